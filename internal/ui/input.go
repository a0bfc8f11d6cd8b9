package ui

import (
	"bufio"
	"errors"
	"io"
	"log/slog"

	"github.com/rfwatch/tetradetect/internal/scan"
)

// Key bindings. Input is read byte-wise from the reader; on a regular
// terminal keys take effect when the line is flushed.
const (
	keyAlertMode   = 'm'
	keyScanMode    = 's'
	keySensitivity = 'e'
	keyDebug       = 'd'
	keyTDMA        = 't'
	keyQuit        = 'q'
)

// WithLogger sets the keyboard logger.
func WithLogger(logger *slog.Logger) func(*Keyboard) {
	return func(k *Keyboard) {
		k.logger = logger
	}
}

// Keyboard reads key presses from a reader on a background goroutine and
// queues them as detector events. Poll never blocks; events arriving faster
// than the detector drains them are dropped.
type Keyboard struct {
	events chan scan.Event
	logger *slog.Logger
}

// NewKeyboard starts reading from r. The reader is consumed until EOF or a
// read error, either of which queues a final exit event.
func NewKeyboard(r io.Reader, options ...func(*Keyboard)) *Keyboard {
	k := Keyboard{
		events: make(chan scan.Event, 16),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&k)
	}

	go k.readLoop(r)
	return &k
}

// Poll reports the next pending event without blocking.
func (k *Keyboard) Poll() (scan.Event, bool) {
	select {
	case event := <-k.events:
		return event, true
	default:
		return 0, false
	}
}

func (k *Keyboard) readLoop(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				k.logger.Warn("input read failed", slog.Any("error", err))
			}
			k.push(scan.EventExit)
			return
		}

		event, ok := mapKey(b)
		if !ok {
			continue
		}
		k.push(event)
	}
}

func (k *Keyboard) push(event scan.Event) {
	select {
	case k.events <- event:
	default:
		// Detector is not draining; dropping beats blocking the reader.
	}
}

func mapKey(b byte) (scan.Event, bool) {
	switch lower(b) {
	case keyAlertMode:
		return scan.EventCycleAlertMode, true
	case keyScanMode:
		return scan.EventToggleScanMode, true
	case keySensitivity:
		return scan.EventCycleSensitivity, true
	case keyDebug:
		return scan.EventToggleDebug, true
	case keyTDMA:
		return scan.EventToggleTDMA, true
	case keyQuit:
		return scan.EventExit, true
	default:
		return 0, false
	}
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
