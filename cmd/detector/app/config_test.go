package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestLoadConfig_EmptyPathDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DriverSim, config.Radio.Driver)

	level, err := config.Settings.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfig_CATDriver(t *testing.T) {
	path := writeConfig(t, `
settings:
  logLevel: debug
radio:
  driver: cat
  serial:
    port: /dev/ttyUSB0
alert:
  command: ""
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DriverCAT, config.Radio.Driver)
	assert.Equal(t, "/dev/ttyUSB0", config.Radio.Serial.Port)
	assert.NotZero(t, config.Radio.Serial.BaudRate, "validation must apply the default baud rate")

	level, err := config.Settings.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfig_CATWithoutPortFails(t *testing.T) {
	path := writeConfig(t, `
radio:
  driver: cat
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_UnknownDriverFails(t *testing.T) {
	path := writeConfig(t, `
radio:
  driver: hackrf
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_SimCarriers(t *testing.T) {
	path := writeConfig(t, `
radio:
  driver: sim
  sim:
    seed: 42
    carriers:
      - frequency: 380450000
        power: -55
        period: 750ms
        duty: 0.4
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, config.Radio.Sim.Carriers, 1)
	assert.Equal(t, uint32(380_450_000), config.Radio.Sim.Carriers[0].Frequency)
}

func TestSettings_Level(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"info":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		level, err := Settings{LogLevel: name}.Level()
		require.NoError(t, err, name)
		assert.Equal(t, want, level, name)
	}

	_, err := Settings{LogLevel: "verbose"}.Level()
	assert.Error(t, err)
}
