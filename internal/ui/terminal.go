// Package ui is the thin I/O shell around the detection core: a single-line
// ANSI terminal renderer and a keyboard input source. Neither holds any
// detection state; the renderer draws whatever Snapshot it is handed and the
// keyboard only translates bytes into events.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rfwatch/tetradetect/internal/scan"
)

const barWidth = 25

// Terminal renders detector snapshots as a single status line, redrawn in
// place once per dwell step.
type Terminal struct {
	w io.Writer
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Render draws one frame: either the main status line with a strength bar or
// the debug readout, plus the transient mode-change popup.
func (t *Terminal) Render(s scan.Snapshot) {
	var b strings.Builder
	b.WriteString("\r\x1b[2K")

	if s.Config.Debug {
		t.writeDebug(&b, s)
	} else {
		t.writeMain(&b, s)
	}

	if s.Popup != "" {
		fmt.Fprintf(&b, "  [%s]", s.Popup)
	}

	fmt.Fprint(t.w, b.String())
}

func (t *Terminal) writeMain(b *strings.Builder, s scan.Snapshot) {
	status := "Scanning"
	if s.Lock.Locked {
		status = "Locked  "
	}

	fmt.Fprintf(b, "%s |%s| %s  %s  TDMA %s  S%d",
		status,
		strengthBar(s.Reading.Strength),
		formatFrequency(s.Reading.Frequency),
		s.Config.Mode,
		onOff(s.Config.TDMAHint),
		s.Config.Sensitivity)
}

func (t *Terminal) writeDebug(b *strings.Builder, s scan.Snapshot) {
	peak := "NO "
	if s.Reading.Peak {
		peak = "YES"
	}
	locked := "N"
	if s.Lock.Locked {
		locked = "Y"
	}

	fmt.Fprintf(b, "Freq: %s  Peak: %s  RSSI: %.1f dBm  L:%s",
		formatFrequency(s.Reading.Frequency), peak, s.Reading.Strength, locked)
}

// strengthBar renders the signal strength normalized against the instrument
// floor, exactly the range the hardware can report.
func strengthBar(strength float64) string {
	norm := (strength - scan.FloorDBm) / -scan.FloorDBm
	if norm < 0 {
		norm = 0
	} else if norm > 1 {
		norm = 1
	}

	fill := int(norm * barWidth)
	return strings.Repeat("#", fill) + strings.Repeat("-", barWidth-fill)
}

func formatFrequency(frequency uint32) string {
	return humanize.SI(float64(frequency), "Hz")
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
