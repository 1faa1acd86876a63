package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kassenbuch/internal/core"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Component: ComponentApp, Output: &buf}), &buf
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)
	logger.WithComponent(ComponentStorage).Info("opened", FieldBackend, "sqlite")

	out := buf.String()
	if !strings.Contains(out, "component=storage") || !strings.Contains(out, "backend=sqlite") {
		t.Fatalf("unexpected output %q", out)
	}
	if logger.Component() != ComponentApp {
		t.Fatalf("WithComponent must not mutate the parent logger")
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFromContextFallback(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != ComponentApp {
		t.Fatalf("expected default app logger, got %+v", l)
	}
}

func TestMiddlewareAttachesLogger(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)
	handler := Middleware(logger.With(FieldRequestID, "req-42"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			FromContext(r.Context()).Info("inside")
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Fatalf("request id missing from %q", buf.String())
	}
}

func TestLogHTTPEndLevels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{200, "level=INFO"},
		{404, "level=WARN"},
		{503, "level=ERROR"},
	}
	for _, tc := range cases {
		logger, buf := newBufferLogger(slog.LevelDebug)
		sl := NewStructuredLogger(logger)
		sl.LogHTTPEnd(context.Background(), httptest.NewRequest(http.MethodGet, "/ui/ledger", nil), tc.status, 3, "127.0.0.1")
		if !strings.Contains(buf.String(), tc.level) {
			t.Fatalf("status %d: expected %s in %q", tc.status, tc.level, buf.String())
		}
	}
}

func TestWithEntryFields(t *testing.T) {
	e := core.Entry{ID: 7, VoucherRef: "B-1", RawDate: "2024-01-05", Category: "Ausgaben", Amount: core.Money{Cents: -500}}
	f := NewFields().WithEntry(e)
	if f[FieldEntryID] != int64(7) || f[FieldAmountCents] != int64(-500) || f[FieldCategory] != "Ausgaben" {
		t.Fatalf("unexpected fields %v", f)
	}
	if _, ok := NewFields().WithEntry(core.Entry{})[FieldEntryID]; ok {
		t.Fatalf("unsaved entry must not carry an id")
	}
}

func TestLogErrorNilFields(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)
	NewStructuredLogger(logger).LogError(context.Background(), "load failed", errors.New("disk"), ComponentStorage, OpLoad, nil)
	out := buf.String()
	if !strings.Contains(out, "error=disk") || !strings.Contains(out, "operation=load") {
		t.Fatalf("unexpected output %q", out)
	}
}
