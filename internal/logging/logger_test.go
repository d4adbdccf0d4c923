package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("engine", "risk").Msg("scored")

	out := buf.String()
	if !strings.Contains(out, `"message":"scored"`) {
		t.Errorf("missing message: %s", out)
	}
	if !strings.Contains(out, `"engine":"risk"`) {
		t.Errorf("missing field: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Fatalf("RequestIDFromContext = %q", got)
	}

	Ctx(ctx).Info().Msg("hello")
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("request id not logged: %s", buf.String())
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b || len(a) != 36 {
		t.Errorf("unexpected ids %q %q", a, b)
	}
}
