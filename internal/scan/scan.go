// Package scan implements the carrier detection core: band calibration,
// channel sequencing, adaptive thresholding, persistence validation and the
// Scanning/Locked state machine. All hardware and UI access goes through the
// narrow collaborator interfaces declared here, so the whole machine can be
// driven with fakes in tests.
package scan

// Radio is the receiver the detector samples. Tune selects a frequency and
// SampleStrength reports the instantaneous signal strength in dBm at the
// currently tuned frequency. BeginSession must succeed before any tuning
// happens; EndSession releases the hardware.
type Radio interface {
	BeginSession() error
	EndSession() error
	Tune(frequency uint32) error
	SampleStrength() (float64, error)
}

// Notifier receives detection events. Alert fires exactly once per new lock
// acquisition; Ack is a short acknowledgment of a user key press.
type Notifier interface {
	Alert()
	Ack()
}

// RenderSurface consumes a Snapshot once per dwell step and draws it.
type RenderSurface interface {
	Render(Snapshot)
}

// InputSource delivers user events. Poll must not block: it reports the next
// pending event, or ok == false when none is queued.
type InputSource interface {
	Poll() (event Event, ok bool)
}

// Event is a discrete user input event.
type Event uint8

const (
	// EventCycleAlertMode advances the alert mode Off -> Once -> 8s -> ...
	EventCycleAlertMode Event = iota

	// EventToggleScanMode switches between the fixed channel list and the
	// full band sweep.
	EventToggleScanMode

	// EventCycleSensitivity advances sensitivity 1..5, wrapping 5 -> 1.
	EventCycleSensitivity

	// EventToggleDebug switches the debug readout on and off.
	EventToggleDebug

	// EventToggleTDMA flips the TDMA hint flag.
	EventToggleTDMA

	// EventExit requests shutdown. Honored between dwell steps.
	EventExit
)
