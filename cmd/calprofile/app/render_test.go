package app

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfwatch/tetradetect/internal/scan"
)

func testChannels(baseline float64) []scan.Channel {
	channels := make([]scan.Channel, scan.NumChannels)
	for i := range channels {
		channels[i] = scan.Channel{
			Frequency: scan.StartFrequency + uint32(i)*scan.FrequencyStep,
			Baseline:  baseline,
		}
	}
	return channels
}

func TestRenderProfile_Dimensions(t *testing.T) {
	config := NewConfig()
	channels := testChannels(-92)

	img := renderProfile(channels, config)

	bounds := img.Bounds()
	assert.Equal(t, leftBorder+len(channels)*config.BarWidth+rightBorder, bounds.Dx())
	assert.Equal(t, topBorder+config.Height+bottomBorder, bounds.Dy())
}

func TestRenderProfile_HotChannelStandsOut(t *testing.T) {
	config := NewConfig()
	channels := testChannels(-92)
	channels[100].Baseline = -60

	img := renderProfile(channels, config)

	// Near the top of the plot only the hot channel's bar is drawn.
	y := topBorder + 4
	hotX := leftBorder + 100*config.BarWidth + config.BarWidth/2
	quietX := leftBorder + 10*config.BarWidth + config.BarWidth/2

	assert.NotEqual(t, color.RGBAModel.Convert(backgroundColor), img.At(hotX, y))
	assert.Equal(t, color.RGBAModel.Convert(backgroundColor), img.At(quietX, y))
}

func TestPowerBounds(t *testing.T) {
	config := NewConfig()
	channels := []scan.Channel{{Baseline: -95}, {Baseline: -60}, {Baseline: -88}}

	minPower, maxPower := powerBounds(channels, config)
	assert.Equal(t, -95.0, minPower)
	assert.Equal(t, -60.0, maxPower)

	pinnedMin, pinnedMax := -100.0, -50.0
	config.MinPower, config.MaxPower = &pinnedMin, &pinnedMax
	minPower, maxPower = powerBounds(channels, config)
	assert.Equal(t, -100.0, minPower)
	assert.Equal(t, -50.0, maxPower)
}

func TestPowerBounds_DegenerateScale(t *testing.T) {
	config := NewConfig()
	channels := []scan.Channel{{Baseline: -92}, {Baseline: -92}}

	minPower, maxPower := powerBounds(channels, config)
	require.Greater(t, maxPower, minPower)
}

func TestNormalizeClamps(t *testing.T) {
	assert.Equal(t, 0.0, normalize(-120, -100, -50))
	assert.Equal(t, 1.0, normalize(-20, -100, -50))
	assert.InDelta(t, 0.5, normalize(-75, -100, -50), 1e-9)
}
