package scan

// Threshold converts a channel baseline and the user sensitivity into a
// detection threshold in dBm. Sensitivity 1..5 subtracts linearly: higher
// sensitivity lowers the threshold, trading false positives for reach. While
// locked, the hysteresis drop is subtracted as well, so an acquired carrier
// is held longer than a new one would be accepted.
func Threshold(baseline float64, sensitivity int, locked bool) float64 {
	threshold := baseline + DetectionMarginDB - float64(sensitivity)
	if locked {
		threshold -= LockHysteresisDB
	}
	return threshold
}
