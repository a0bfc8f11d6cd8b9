package cat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

// fakePort scripts receiver responses and records everything written.
type fakePort struct {
	serial.Port

	responses *bytes.Buffer
	written   bytes.Buffer
	closed    bool
}

func newFakePort(responses string) *fakePort {
	return &fakePort{responses: bytes.NewBufferString(responses)}
}

func (p *fakePort) Read(b []byte) (int, error)  { return p.responses.Read(b) }
func (p *fakePort) Write(b []byte) (int, error) { return p.written.Write(b) }

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestDevice_SessionAndTune(t *testing.T) {
	port := newFakePort("OK\nOK\n-87.5\nOK\n")
	device := newDevice(port)

	require.NoError(t, device.BeginSession())
	require.NoError(t, device.Tune(389_540_000))

	strength, err := device.SampleStrength()
	require.NoError(t, err)
	assert.Equal(t, -87.5, strength)

	require.NoError(t, device.EndSession())
	assert.True(t, port.closed)

	assert.Equal(t, "ON\nF 389540000\nL\nOFF\n", port.written.String())
}

func TestDevice_UnexpectedResponse(t *testing.T) {
	device := newDevice(newFakePort("ERR\n"))

	err := device.BeginSession()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response")
}

func TestDevice_InvalidStrengthReading(t *testing.T) {
	device := newDevice(newFakePort("OK\nnot-a-number\n"))

	require.NoError(t, device.BeginSession())

	_, err := device.SampleStrength()
	assert.Error(t, err)
}

func TestDevice_NoResponse(t *testing.T) {
	device := newDevice(newFakePort(""))

	assert.Error(t, device.Tune(380_000_000))
}

func TestConfig_Validate(t *testing.T) {
	config := Config{}
	assert.Error(t, config.Validate(), "port is required")

	config = Config{Port: "/dev/ttyUSB0"}
	require.NoError(t, config.Validate())
	assert.Equal(t, defaultBaudRate, config.BaudRate)

	config = Config{Port: "/dev/ttyUSB0", BaudRate: -1}
	assert.Error(t, config.Validate())
}
