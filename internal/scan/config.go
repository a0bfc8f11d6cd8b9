package scan

import "time"

// Band and detection constants. These mirror the receiver hardware and the
// on-air timing of the signal being hunted, and are deliberately not
// runtime-configurable.
const (
	// StartFrequency and EndFrequency bound the tunable band in Hz.
	StartFrequency uint32 = 380_000_000
	EndFrequency   uint32 = 385_000_000

	// FrequencyStep is the channel raster width in Hz.
	FrequencyStep uint32 = 25_000

	// NumChannels is the calibrated channel count, endpoints inclusive.
	NumChannels = int((EndFrequency-StartFrequency)/FrequencyStep) + 1

	// FloorDBm is the instrument's bottom-of-scale reading. It doubles as
	// the baseline for fixed-list channels, which are not individually
	// tracked during calibration.
	FloorDBm = -80.0

	// DetectionMarginDB is added to a channel baseline to form the
	// detection threshold before sensitivity is applied.
	DetectionMarginDB = 8.0

	// LockHysteresisDB is subtracted from the threshold while locked, so
	// holding a lock is easier than acquiring one. Prevents flutter at the
	// edge of detection range.
	LockHysteresisDB = 5.0

	// SettleDelay is the wait between tuning and sampling.
	SettleDelay = 5 * time.Millisecond

	// SlotDuration is the persistence slot: a candidate must stay above
	// threshold for this whole window to count as a sustained carrier.
	SlotDuration = 14 * time.Millisecond

	// FrameInterval paces one dwell step, roughly one TDMA frame on air.
	FrameInterval = 57 * time.Millisecond

	// LockHoldDuration is how long a lock survives without reconfirmation.
	LockHoldDuration = 20 * time.Second

	// PopupDuration is how long a mode-change popup stays armed.
	PopupDuration = 2 * time.Second

	// MinSensitivity and MaxSensitivity bound the user sensitivity setting.
	MinSensitivity = 1
	MaxSensitivity = 5
)

// FixedFrequencies is the hard-coded list of known carrier frequencies
// visited in Fixed scan mode, in listed order. Some entries sit outside the
// calibrated band on purpose.
var FixedFrequencies = []uint32{
	389_540_000, 388_790_000, 389_170_000,
	380_450_000, 380_425_000, 380_400_000,
	379_650_000, 380_500_000, 379_625_000,
	380_375_000, 379_375_000, 380_325_000,
	380_300_000, 379_300_000, 380_025_000,
	384_437_500, 384_712_500,
}

// ScanMode selects the channel sequence for a pass.
type ScanMode uint8

const (
	// ScanFixed visits the hard-coded known-carrier list.
	ScanFixed ScanMode = iota

	// ScanSweep visits every calibrated channel in ascending order.
	ScanSweep
)

func (m ScanMode) String() string {
	if m == ScanSweep {
		return "Sweep"
	}
	return "Fixed"
}

// Toggle returns the other scan mode.
func (m ScanMode) Toggle() ScanMode {
	if m == ScanFixed {
		return ScanSweep
	}
	return ScanFixed
}

// AlertMode selects how lock acquisitions are announced.
type AlertMode uint8

const (
	AlertOff AlertMode = iota
	AlertOnce
	AlertRepeat8s
	AlertRepeat12s
	AlertRepeat3s
	AlertRepeat6s

	numAlertModes
)

var alertModeNames = [numAlertModes]string{"Off", "Once", "8s", "12s", "3s", "6s"}

func (m AlertMode) String() string {
	if m >= numAlertModes {
		return "Off"
	}
	return alertModeNames[m]
}

// Next returns the following alert mode, cycling back to Off after the last.
func (m AlertMode) Next() AlertMode {
	return (m + 1) % numAlertModes
}

// Config is the user-adjustable scan configuration. It is owned exclusively
// by the Detector; input events are the only mutation path.
type Config struct {
	Mode        ScanMode
	Sensitivity int // 1..5, higher means easier detection
	Alert       AlertMode
	Debug       bool
	TDMAHint    bool
}

// DefaultConfig returns the power-on configuration.
func DefaultConfig() Config {
	return Config{
		Mode:        ScanFixed,
		Sensitivity: 3,
		Alert:       AlertOnce,
	}
}
