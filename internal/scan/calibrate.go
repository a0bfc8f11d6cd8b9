package scan

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// Calibrate sweeps the tunable band once, sampling the idle noise floor of
// every channel. It blocks until the whole band has been visited and must run
// before the scan loop starts. Any radio failure aborts calibration: without
// a complete baseline table the detector cannot produce meaningful
// thresholds.
func Calibrate(radio Radio, clock Clock, logger *slog.Logger) (*Calibration, error) {
	baselines := make([]float64, NumChannels)
	for i := range baselines {
		frequency := StartFrequency + uint32(i)*FrequencyStep

		if err := radio.Tune(frequency); err != nil {
			return nil, fmt.Errorf("calibrating channel %d (%d Hz): %w", i, frequency, err)
		}
		clock.Sleep(SettleDelay)

		strength, err := radio.SampleStrength()
		if err != nil {
			return nil, fmt.Errorf("calibrating channel %d (%d Hz): %w", i, frequency, err)
		}
		baselines[i] = strength

		clock.Sleep(SettleDelay)
	}

	logger.Info("calibration complete",
		slog.Int("channels", NumChannels),
		slog.Float64("meanDBm", stat.Mean(baselines, nil)),
		slog.Float64("stdDevDB", stat.StdDev(baselines, nil)))

	return &Calibration{baselines: baselines}, nil
}
