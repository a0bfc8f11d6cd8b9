package scan

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCalibrate_VisitsEveryChannelAscending(t *testing.T) {
	radio := newFakeRadio()
	radio.defaultDBm = -95
	radio.strengths[StartFrequency] = -91
	radio.strengths[EndFrequency] = -89.5

	cal, err := Calibrate(radio, newFakeClock(), discardLogger())
	require.NoError(t, err)

	require.Len(t, radio.tunes, NumChannels)
	for i, frequency := range radio.tunes {
		assert.Equal(t, StartFrequency+uint32(i)*FrequencyStep, frequency)
	}

	baseline, ok := cal.Baseline(StartFrequency)
	require.True(t, ok)
	assert.Equal(t, -91.0, baseline)

	baseline, ok = cal.Baseline(EndFrequency)
	require.True(t, ok)
	assert.Equal(t, -89.5, baseline)

	baseline, ok = cal.Baseline(StartFrequency + FrequencyStep)
	require.True(t, ok)
	assert.Equal(t, -95.0, baseline)
}

func TestCalibrate_RadioFailureAborts(t *testing.T) {
	radio := newFakeRadio()
	radio.sampleErr = assert.AnError

	_, err := Calibrate(radio, newFakeClock(), discardLogger())
	assert.Error(t, err)

	radio = newFakeRadio()
	radio.tuneErr = assert.AnError

	_, err = Calibrate(radio, newFakeClock(), discardLogger())
	assert.Error(t, err)
}
