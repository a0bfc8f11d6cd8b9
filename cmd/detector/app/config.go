package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rfwatch/tetradetect/internal/radio/cat"
	"github.com/rfwatch/tetradetect/internal/radio/sim"
)

const (
	// DriverCAT is a serial-attached receiver.
	DriverCAT DriverType = "cat"

	// DriverSim is the simulated receiver.
	DriverSim DriverType = "sim"
)

type DriverType string

// Config is the daemon configuration. Only the I/O shell is configurable
// here; detection constants are fixed at compile time.
type Config struct {
	Settings Settings    `yaml:"settings"`
	Radio    RadioConfig `yaml:"radio"`
	Alert    AlertConfig `yaml:"alert"`
}

// Settings holds global application settings.
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// Level parses the configured log level.
func (s Settings) Level() (slog.Level, error) {
	switch strings.ToLower(s.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level '%s'", s.LogLevel)
	}
}

// RadioConfig selects and configures the receiver backend.
type RadioConfig struct {
	Driver DriverType `yaml:"driver"`
	Serial cat.Config `yaml:"serial"`
	Sim    sim.Config `yaml:"sim"`
}

// AlertConfig configures lock-acquisition notifications.
type AlertConfig struct {
	Command string `yaml:"command"`
}

// LoadConfig reads and validates a YAML configuration file. An empty path
// yields the default configuration (simulated receiver).
func LoadConfig(path string) (*Config, error) {
	config := Config{
		Radio: RadioConfig{Driver: DriverSim},
	}
	if path == "" {
		return &config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	switch config.Radio.Driver {
	case "", DriverSim:
		config.Radio.Driver = DriverSim
	case DriverCAT:
		if err = config.Radio.Serial.Validate(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown radio driver '%s'", config.Radio.Driver)
	}

	return &config, nil
}
