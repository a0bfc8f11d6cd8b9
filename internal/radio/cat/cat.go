// Package cat drives a serial-attached receiver over a minimal line
// protocol: "ON"/"OFF" open and close the receive session, "F <hz>" tunes,
// and "L" reads the instantaneous signal strength in dBm. Every command is
// answered with a single line, "OK" for commands and a decimal value for
// strength reads.
package cat

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
)

const (
	defaultBaudRate    = 115200
	defaultReadTimeout = 500 * time.Millisecond
)

// Config holds the serial link settings for the receiver.
type Config struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baudRate"`
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("cat: serial port is required")
	}
	if c.BaudRate == 0 {
		c.BaudRate = defaultBaudRate
	}
	if c.BaudRate < 0 {
		return fmt.Errorf("cat: invalid baud rate %d", c.BaudRate)
	}
	return nil
}

// Device is a receiver attached over a serial port.
type Device struct {
	port   serial.Port
	reader *bufio.Reader
	logger *slog.Logger
}

// WithLogger sets the device logger.
func WithLogger(logger *slog.Logger) func(*Device) {
	return func(d *Device) {
		d.logger = logger.With(slog.String("device", "cat"))
	}
}

// Open opens the serial port and prepares the device. The receive session is
// not started until BeginSession.
func Open(config *Config, options ...func(*Device)) (*Device, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(config.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", config.Port, err)
	}
	if err = port.SetReadTimeout(defaultReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("setting read timeout: %w", err)
	}

	return newDevice(port, options...), nil
}

func newDevice(port serial.Port, options ...func(*Device)) *Device {
	d := Device{
		port:   port,
		reader: bufio.NewReader(port),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&d)
	}

	return &d
}

// BeginSession puts the receiver into receive mode.
func (d *Device) BeginSession() error {
	if err := d.command("ON"); err != nil {
		return fmt.Errorf("beginning session: %w", err)
	}
	d.logger.Info("receive session started")
	return nil
}

// EndSession stops the receiver and closes the serial port. Safe to call
// after a failed BeginSession.
func (d *Device) EndSession() error {
	cmdErr := d.command("OFF")
	closeErr := d.port.Close()

	if cmdErr != nil {
		d.logger.Warn("receiver did not acknowledge session end", slog.Any("error", cmdErr))
	}
	if closeErr != nil {
		return fmt.Errorf("closing serial port: %w", closeErr)
	}
	return nil
}

// Tune sets the receiver frequency in Hz.
func (d *Device) Tune(frequency uint32) error {
	if err := d.command(fmt.Sprintf("F %d", frequency)); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}

// SampleStrength reads the instantaneous signal strength in dBm at the
// currently tuned frequency.
func (d *Device) SampleStrength() (float64, error) {
	line, err := d.exchange("L")
	if err != nil {
		return 0, fmt.Errorf("reading strength: %w", err)
	}
	return parseStrength(line)
}

// command sends a command expecting a bare "OK" acknowledgment.
func (d *Device) command(cmd string) error {
	line, err := d.exchange(cmd)
	if err != nil {
		return err
	}
	if line != "OK" {
		return fmt.Errorf("unexpected response %q to %q", line, cmd)
	}
	return nil
}

// exchange writes one command line and reads one response line.
func (d *Device) exchange(cmd string) (string, error) {
	if _, err := d.port.Write([]byte(cmd + "\n")); err != nil {
		return "", fmt.Errorf("writing command: %w", err)
	}

	line, err := d.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("empty response to %q", cmd)
	}
	return line, nil
}

func parseStrength(line string) (float64, error) {
	strength, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid strength reading %q: %w", line, err)
	}
	return strength, nil
}
