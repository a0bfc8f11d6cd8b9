package app

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/rfwatch/tetradetect/internal/radio/cat"
	"github.com/rfwatch/tetradetect/internal/radio/sim"
	"github.com/rfwatch/tetradetect/internal/scan"
)

// Run performs one calibration sweep over the configured receiver and writes
// the noise-floor profile as a PNG.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	radio, err := createRadio(config, logger)
	if err != nil {
		return fmt.Errorf("creating radio: %w", err)
	}

	if err = radio.BeginSession(); err != nil {
		return fmt.Errorf("beginning radio session: %w", err)
	}
	defer func() {
		if err := radio.EndSession(); err != nil {
			logger.Warn("ending radio session", slog.Any("error", err))
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	logger.Info("sweeping band, hold on, this takes a few seconds")
	cal, err := scan.Calibrate(radio, scan.SystemClock(), logger)
	if err != nil {
		return fmt.Errorf("calibrating: %w", err)
	}

	img := renderProfile(cal.Channels(), config)

	f, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}

	logger.Info("profile written", slog.String("path", config.OutputFile))
	return nil
}

func createRadio(config *Config, logger *slog.Logger) (scan.Radio, error) {
	if config.Driver == DriverCAT {
		serialConfig := cat.Config{Port: config.SerialPort, BaudRate: config.BaudRate}
		device, err := cat.Open(&serialConfig, cat.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("opening CAT receiver: %w", err)
		}
		return device, nil
	}
	return sim.New(&sim.Config{}), nil
}
