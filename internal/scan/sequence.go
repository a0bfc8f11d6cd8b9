package scan

// Sequence produces the ordered channel list for one scan pass. Fixed mode
// visits the hard-coded carrier list with the instrument floor as baseline:
// those channels are rarely hit during the band sweep and their individual
// baselines are not tracked. Sweep mode visits every calibrated channel in
// ascending frequency order with its calibrated baseline.
func Sequence(mode ScanMode, cal *Calibration) []Channel {
	if mode == ScanSweep {
		return cal.Channels()
	}

	channels := make([]Channel, len(FixedFrequencies))
	for i, frequency := range FixedFrequencies {
		channels[i] = Channel{Frequency: frequency, Baseline: FloorDBm}
	}
	return channels
}
