package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rfwatch/tetradetect/internal/scan"
)

func collectEvents(t *testing.T, k *Keyboard, n int) []scan.Event {
	t.Helper()

	var events []scan.Event
	deadline := time.Now().Add(2 * time.Second)
	for len(events) < n && time.Now().Before(deadline) {
		if event, ok := k.Poll(); ok {
			events = append(events, event)
			continue
		}
		time.Sleep(time.Millisecond)
	}
	return events
}

func TestKeyboard_KeyMapping(t *testing.T) {
	k := NewKeyboard(strings.NewReader("msedtq"))

	events := collectEvents(t, k, 6)
	assert.Equal(t, []scan.Event{
		scan.EventCycleAlertMode,
		scan.EventToggleScanMode,
		scan.EventCycleSensitivity,
		scan.EventToggleDebug,
		scan.EventToggleTDMA,
		scan.EventExit,
	}, events)
}

func TestKeyboard_UppercaseAndNoise(t *testing.T) {
	k := NewKeyboard(strings.NewReader("x\nM \tD"))

	events := collectEvents(t, k, 2)
	assert.Equal(t, []scan.Event{scan.EventCycleAlertMode, scan.EventToggleDebug}, events)
}

func TestKeyboard_EOFQueuesExit(t *testing.T) {
	k := NewKeyboard(strings.NewReader(""))

	events := collectEvents(t, k, 1)
	assert.Equal(t, []scan.Event{scan.EventExit}, events)
}

func TestKeyboard_PollNeverBlocks(t *testing.T) {
	k := NewKeyboard(strings.NewReader("q"))

	// Drain whatever is queued, then keep polling an empty source.
	collectEvents(t, k, 2)
	_, ok := k.Poll()
	assert.False(t, ok)
}
