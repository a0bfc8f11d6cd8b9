package scan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Reading is the last-observed sample, recomputed every dwell step and
// overwritten, never historized.
type Reading struct {
	Frequency uint32
	Strength  float64 // dBm
	Peak      bool    // instantaneous and persistence checks both passed
}

// LockState describes the tracking state. Frequency is meaningful only while
// Locked is true. ConfirmedAt advances only when a peak is reconfirmed and is
// the sole driver of the unlock timeout.
type LockState struct {
	Locked      bool
	Frequency   uint32
	ConfirmedAt time.Time
}

// Snapshot is the render view of the detector, captured once per dwell step.
type Snapshot struct {
	Reading Reading
	Lock    LockState
	Config  Config
	Popup   string // empty once the popup window has expired
}

// WithLogger sets the detector logger.
func WithLogger(logger *slog.Logger) func(*Detector) {
	return func(d *Detector) {
		d.logger = logger
	}
}

// WithConfig sets the initial scan configuration.
func WithConfig(cfg Config) func(*Detector) {
	return func(d *Detector) {
		d.cfg = cfg
	}
}

// WithNotifier sets the notification collaborator.
func WithNotifier(n Notifier) func(*Detector) {
	return func(d *Detector) {
		d.notifier = n
	}
}

// WithRenderSurface sets the render collaborator.
func WithRenderSurface(s RenderSurface) func(*Detector) {
	return func(d *Detector) {
		d.surface = s
	}
}

// WithInputSource sets the user input collaborator.
func WithInputSource(in InputSource) func(*Detector) {
	return func(d *Detector) {
		d.input = in
	}
}

// Detector is the detection state machine. It exclusively owns the scan
// configuration, lock state and last reading; collaborators only ever see
// copies via Snapshot. The machine is single-threaded: one control loop
// alternates between Scanning and Locked, yielding to input and render once
// per dwell step. The only blocking wait is the persistence slot, which
// busy-polls the radio for SlotDuration.
type Detector struct {
	radio    Radio
	clock    Clock
	cal      *Calibration
	notifier Notifier
	surface  RenderSurface
	input    InputSource
	logger   *slog.Logger

	cfg     Config
	lock    LockState
	reading Reading

	popup      string
	popupUntil time.Time

	pass []Channel // channel list of the in-flight pass
	next int       // index of the next channel to visit

	exit bool
}

// New creates a Detector over a calibrated band. Collaborators not supplied
// through options default to no-ops, which keeps the machine runnable
// headless and in tests.
func New(radio Radio, clock Clock, cal *Calibration, options ...func(*Detector)) *Detector {
	d := Detector{
		radio:    radio,
		clock:    clock,
		cal:      cal,
		cfg:      DefaultConfig(),
		notifier: nopNotifier{},
		surface:  nopSurface{},
		input:    nopInput{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		reading:  Reading{Frequency: StartFrequency, Strength: FloorDBm},
	}

	for _, option := range options {
		option(&d)
	}

	return &d
}

// Config returns the current scan configuration.
func (d *Detector) Config() Config { return d.cfg }

// Lock returns the current lock state.
func (d *Detector) Lock() LockState { return d.lock }

// Run drives the scan/lock loop until an exit event or context cancellation.
// Cancellation is observed between dwell steps only, never inside a
// persistence slot.
func (d *Detector) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.drainInput()
		if d.exit {
			d.logger.Info("exit requested")
			return nil
		}

		started := d.clock.Now()
		if d.lock.Locked {
			d.stepLocked()
		} else {
			d.stepScanning()
		}
		d.renderFrame()

		// Fixed frame pacing: the visible refresh rate stays steady whether
		// or not a persistence slot ran this step.
		if remaining := FrameInterval - d.clock.Now().Sub(started); remaining > 0 {
			d.clock.Sleep(remaining)
		}
	}
}

// stepScanning performs one dwell step of a scanning pass. The channel list
// is rebuilt only at pass boundaries, so a mid-pass scan mode toggle takes
// effect on the next pass.
func (d *Detector) stepScanning() {
	if d.next >= len(d.pass) {
		d.pass = Sequence(d.cfg.Mode, d.cal)
		d.next = 0
	}
	ch := d.pass[d.next]
	d.next++

	strength, err := d.sample(ch.Frequency)
	if err != nil {
		d.logger.Warn("dwell sample failed", slog.Uint64("frequencyHz", uint64(ch.Frequency)), slog.Any("error", err))
		d.reading = Reading{Frequency: ch.Frequency, Strength: FloorDBm}
		return
	}

	threshold := Threshold(ch.Baseline, d.cfg.Sensitivity, false)
	peak := strength > threshold && d.persist(threshold)
	d.reading = Reading{Frequency: ch.Frequency, Strength: strength, Peak: peak}

	if !peak {
		return
	}

	d.lock = LockState{Locked: true, Frequency: ch.Frequency, ConfirmedAt: d.clock.Now()}
	d.next = len(d.pass) // abandon the rest of this pass
	d.notifier.Alert()
	d.logger.Info("carrier locked",
		slog.Uint64("frequencyHz", uint64(ch.Frequency)),
		slog.Float64("rssiDBm", strength),
		slog.Float64("thresholdDBm", threshold))
}

// stepLocked re-validates the locked frequency with the hysteresis-relaxed
// threshold. A confirmed peak refreshes the lock; going LockHoldDuration
// without one drops back to scanning.
func (d *Detector) stepLocked() {
	frequency := d.lock.Frequency

	strength, err := d.sample(frequency)
	if err != nil {
		d.logger.Warn("dwell sample failed", slog.Uint64("frequencyHz", uint64(frequency)), slog.Any("error", err))
		strength = FloorDBm
	}

	threshold := Threshold(d.lockedBaseline(frequency), d.cfg.Sensitivity, true)
	peak := err == nil && strength > threshold && d.persist(threshold)
	d.reading = Reading{Frequency: frequency, Strength: strength, Peak: peak}

	now := d.clock.Now()
	switch {
	case peak:
		d.lock.ConfirmedAt = now
	case now.Sub(d.lock.ConfirmedAt) > LockHoldDuration:
		d.logger.Info("carrier lost", slog.Uint64("frequencyHz", uint64(frequency)))
		d.lock = LockState{}
	}
}

// lockedBaseline picks the threshold base for lock re-validation: the
// calibrated baseline in sweep mode, the instrument floor in fixed mode or
// whenever the locked frequency sits outside the calibrated band.
func (d *Detector) lockedBaseline(frequency uint32) float64 {
	if d.cfg.Mode != ScanSweep {
		return FloorDBm
	}
	baseline, ok := d.cal.Baseline(frequency)
	if !ok {
		return FloorDBm
	}
	return baseline
}

// persist busy-polls the radio for one slot. It reports true only if every
// sample across the whole slot stays at or above threshold, failing fast on
// the first sub-threshold sample. This is the sole defense against transient
// spikes masquerading as a sustained carrier.
func (d *Detector) persist(threshold float64) bool {
	deadline := d.clock.Now().Add(SlotDuration)
	for d.clock.Now().Before(deadline) {
		strength, err := d.radio.SampleStrength()
		if err != nil || strength < threshold {
			return false
		}
	}
	return true
}

// sample tunes, waits for the synthesizer to settle and takes one reading.
func (d *Detector) sample(frequency uint32) (float64, error) {
	if err := d.radio.Tune(frequency); err != nil {
		return 0, fmt.Errorf("tuning to %d Hz: %w", frequency, err)
	}
	d.clock.Sleep(SettleDelay)
	return d.radio.SampleStrength()
}

// drainInput applies all pending user events. Events mutate configuration
// immediately; the dwell loop observes the new values on its next step.
func (d *Detector) drainInput() {
	for {
		event, ok := d.input.Poll()
		if !ok {
			return
		}
		d.apply(event)
	}
}

func (d *Detector) apply(event Event) {
	switch event {
	case EventCycleAlertMode:
		d.cfg.Alert = d.cfg.Alert.Next()
		d.showPopup("Mode: " + d.cfg.Alert.String())

	case EventToggleScanMode:
		d.cfg.Mode = d.cfg.Mode.Toggle()
		d.showPopup("Scan: " + d.cfg.Mode.String())

	case EventCycleSensitivity:
		if d.cfg.Sensitivity < MaxSensitivity {
			d.cfg.Sensitivity++
		} else {
			d.cfg.Sensitivity = MinSensitivity
		}
		d.showPopup(fmt.Sprintf("Sens: %d", d.cfg.Sensitivity))

	case EventToggleDebug:
		d.cfg.Debug = !d.cfg.Debug
		d.showPopup("Debug: " + onOff(d.cfg.Debug))

	case EventToggleTDMA:
		d.cfg.TDMAHint = !d.cfg.TDMAHint
		d.showPopup("TDMA: " + onOff(d.cfg.TDMAHint))

	case EventExit:
		d.exit = true
	}

	d.notifier.Ack()
}

func (d *Detector) showPopup(text string) {
	d.popup = text
	d.popupUntil = d.clock.Now().Add(PopupDuration)
}

func (d *Detector) renderFrame() {
	popup := d.popup
	if popup != "" && !d.clock.Now().Before(d.popupUntil) {
		popup = ""
	}
	d.surface.Render(Snapshot{
		Reading: d.reading,
		Lock:    d.lock,
		Config:  d.cfg,
		Popup:   popup,
	})
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

type nopNotifier struct{}

func (nopNotifier) Alert() {}
func (nopNotifier) Ack()   {}

type nopSurface struct{}

func (nopSurface) Render(Snapshot) {}

type nopInput struct{}

func (nopInput) Poll() (Event, bool) { return 0, false }
