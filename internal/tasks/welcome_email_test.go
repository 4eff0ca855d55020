package tasks

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houseofplants/houseofplants/internal/logutil"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendWelcome(_ context.Context, to, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestWelcomeEmailTask_Config(t *testing.T) {
	cfg := WelcomeEmailTask{}.Config()

	assert.Equal(t, "welcome_email", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
}

func TestWelcomeEmailProcessor_Sends(t *testing.T) {
	sender := &fakeSender{}
	processor := WelcomeEmailProcessor(sender, true)

	err := processor(context.Background(), WelcomeEmailTask{
		Email: "alice@example.com",
		Name:  "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, sender.sent)
}

func TestWelcomeEmailProcessor_SendFailure(t *testing.T) {
	sendErr := errors.New("smtp down")
	sender := &fakeSender{err: sendErr}
	processor := WelcomeEmailProcessor(sender, true)

	err := processor(context.Background(), WelcomeEmailTask{Email: "alice@example.com"})

	// The error propagates so the queue retries the send.
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}

// With mail disabled the processor succeeds without touching the sender, so
// queued welcome emails drain instead of piling up as failures.
func TestWelcomeEmailProcessor_Disabled(t *testing.T) {
	sender := &fakeSender{err: errors.New("must not be called")}
	processor := WelcomeEmailProcessor(sender, false)

	err := processor(context.Background(), WelcomeEmailTask{Email: "alice@example.com"})

	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

// The processor logs through the logger carried by the task context.
func TestWelcomeEmailProcessor_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))

	processor := WelcomeEmailProcessor(&fakeSender{}, true)
	require.NoError(t, processor(ctx, WelcomeEmailTask{Email: "alice@example.com"}))

	assert.Contains(t, buf.String(), "welcome email sent")
	assert.Contains(t, buf.String(), "alice@example.com")
}
