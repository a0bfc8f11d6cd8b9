package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/rfwatch/tetradetect/internal/notify"
	"github.com/rfwatch/tetradetect/internal/radio/cat"
	"github.com/rfwatch/tetradetect/internal/radio/sim"
	"github.com/rfwatch/tetradetect/internal/scan"
	"github.com/rfwatch/tetradetect/internal/ui"
)

// Run wires the collaborators together and drives the detector until exit or
// signal. Startup is fail-fast: a radio, notifier or calibration failure
// aborts before the scan loop ever starts.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	logger = logger.With(slog.String("session", uuid.NewString()))

	radio, err := createRadio(&config.Radio, logger)
	if err != nil {
		return fmt.Errorf("creating radio: %w", err)
	}

	notifier, err := notify.New(os.Stdout, config.Alert.Command, notify.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating notifier: %w", err)
	}

	if err = radio.BeginSession(); err != nil {
		return fmt.Errorf("beginning radio session: %w", err)
	}
	defer func() {
		if err := radio.EndSession(); err != nil {
			logger.Warn("ending radio session", slog.Any("error", err))
		}
	}()

	clock := scan.SystemClock()

	logger.Info("calibrating band",
		slog.Uint64("startHz", uint64(scan.StartFrequency)),
		slog.Uint64("endHz", uint64(scan.EndFrequency)),
		slog.Uint64("stepHz", uint64(scan.FrequencyStep)))

	cal, err := scan.Calibrate(radio, clock, logger)
	if err != nil {
		return fmt.Errorf("calibrating: %w", err)
	}

	detector := scan.New(radio, clock, cal,
		scan.WithLogger(logger),
		scan.WithNotifier(notifier),
		scan.WithRenderSurface(ui.NewTerminal(os.Stdout)),
		scan.WithInputSource(ui.NewKeyboard(os.Stdin, ui.WithLogger(logger))))

	err = detector.Run(ctx)
	fmt.Fprintln(os.Stdout) // leave the status line intact on exit

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func createRadio(config *RadioConfig, logger *slog.Logger) (scan.Radio, error) {
	switch config.Driver {
	case DriverCAT:
		device, err := cat.Open(&config.Serial, cat.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("opening CAT receiver: %w", err)
		}
		return device, nil

	case DriverSim:
		return sim.New(&config.Sim), nil

	default:
		return nil, fmt.Errorf("unknown radio driver '%s'", config.Driver)
	}
}
