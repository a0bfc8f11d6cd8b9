package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfwatch/tetradetect/internal/scan"
)

func TestTerminal_MainView(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Render(scan.Snapshot{
		Reading: scan.Reading{Frequency: 389_540_000, Strength: -40},
		Lock:    scan.LockState{Locked: true, Frequency: 389_540_000},
		Config:  scan.Config{Mode: scan.ScanSweep, Sensitivity: 3},
	})

	out := buf.String()
	assert.Contains(t, out, "Locked")
	assert.Contains(t, out, "389.54 MHz")
	assert.Contains(t, out, "Sweep")
	assert.Contains(t, out, "#", "a -40 dBm reading must fill part of the bar")
}

func TestTerminal_ScanningView(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Render(scan.Snapshot{
		Reading: scan.Reading{Frequency: 380_000_000, Strength: -95},
		Config:  scan.Config{Sensitivity: 3},
	})

	out := buf.String()
	assert.Contains(t, out, "Scanning")
	assert.NotContains(t, out, "#", "a below-floor reading leaves the bar empty")
}

func TestTerminal_DebugView(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Render(scan.Snapshot{
		Reading: scan.Reading{Frequency: 380_450_000, Strength: -67.2, Peak: true},
		Lock:    scan.LockState{Locked: true, Frequency: 380_450_000},
		Config:  scan.Config{Debug: true, Sensitivity: 3},
	})

	out := buf.String()
	assert.Contains(t, out, "Peak: YES")
	assert.Contains(t, out, "-67.2 dBm")
	assert.Contains(t, out, "L:Y")
}

func TestTerminal_Popup(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Render(scan.Snapshot{
		Config: scan.Config{Sensitivity: 3},
		Popup:  "Mode: 8s",
	})

	assert.Contains(t, buf.String(), "[Mode: 8s]")
}
