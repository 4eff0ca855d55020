package logutil

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestGetOrDefault_ReturnsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("job", "archiver").Logger()

	ctx := WithLogger(context.Background(), logger)
	got := GetOrDefault(ctx)
	got.Info().Msg("pass started")

	out := buf.String()
	if !strings.Contains(out, "pass started") {
		t.Errorf("context logger did not receive the message, got %q", out)
	}
	if !strings.Contains(out, `"job":"archiver"`) {
		t.Errorf("context logger lost its fields, got %q", out)
	}
}

func TestGetOrDefault_FallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	got := GetOrDefault(context.Background())
	got.Info().Msg("no context logger")

	if !strings.Contains(buf.String(), "no context logger") {
		t.Errorf("fallback did not reach the global logger, got %q", buf.String())
	}
}
