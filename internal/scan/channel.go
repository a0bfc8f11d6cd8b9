package scan

import "fmt"

// Channel is a single tunable frequency with its idle noise-floor baseline.
type Channel struct {
	Frequency uint32  // Hz
	Baseline  float64 // dBm
}

// Calibration is the per-channel baseline table produced by Calibrate. It is
// populated once at startup and immutable thereafter.
type Calibration struct {
	baselines []float64
}

// NewCalibration builds a calibration table from raw baselines, one per
// channel of the band raster.
func NewCalibration(baselines []float64) (*Calibration, error) {
	if len(baselines) != NumChannels {
		return nil, fmt.Errorf("calibration expects %d baselines, got %d", NumChannels, len(baselines))
	}
	c := Calibration{baselines: make([]float64, NumChannels)}
	copy(c.baselines, baselines)
	return &c, nil
}

// Channels returns every calibrated channel in ascending frequency order.
func (c *Calibration) Channels() []Channel {
	channels := make([]Channel, len(c.baselines))
	for i, baseline := range c.baselines {
		channels[i] = Channel{
			Frequency: StartFrequency + uint32(i)*FrequencyStep,
			Baseline:  baseline,
		}
	}
	return channels
}

// Baseline reports the calibrated baseline for a frequency. Frequencies
// outside the calibrated band report ok == false; callers fall back to the
// instrument floor.
func (c *Calibration) Baseline(frequency uint32) (baseline float64, ok bool) {
	if frequency < StartFrequency || frequency > EndFrequency {
		return 0, false
	}
	i := int((frequency - StartFrequency) / FrequencyStep)
	if i >= len(c.baselines) {
		return 0, false
	}
	return c.baselines[i], true
}
