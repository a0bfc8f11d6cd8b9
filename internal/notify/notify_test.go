package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_BellOnAlertAndAck(t *testing.T) {
	var buf bytes.Buffer
	notifier, err := New(&buf, "")
	require.NoError(t, err)

	notifier.Alert()
	notifier.Ack()

	assert.Equal(t, "\a\a", buf.String())
}

func TestNew_MissingCommandFails(t *testing.T) {
	var buf bytes.Buffer
	_, err := New(&buf, "definitely-not-an-executable-on-path")
	assert.Error(t, err)
}

func TestNew_ResolvableCommand(t *testing.T) {
	var buf bytes.Buffer
	_, err := New(&buf, "true")
	require.NoError(t, err)
}
