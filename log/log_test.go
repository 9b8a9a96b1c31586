package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelWarn + 2, "warn+2"},
		{LevelError + 4, "error+4"},
		{LevelTrace - 2, "trace-2"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"warn+2", LevelWarn + 2},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelsAndFormats(t *testing.T) {
	levels := slices.Collect(Levels())
	if want := []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(levels, want) {
		t.Errorf("Levels() = %v, want %v", levels, want)
	}

	formats := slices.Collect(Formats())
	if want := []string{"text", "json"}; !slices.Equal(formats, want) {
		t.Errorf("Formats() = %v, want %v", formats, want)
	}
}

func TestResolveLayout(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RFC3339", time.RFC3339},
		{"kitchen", time.Kitchen},
		{"none", ""},
		{"  ", ""},
		{"15:04", "15:04"},
	}

	for _, tt := range tests {
		if got := resolveLayout(tt.in); got != tt.want {
			t.Errorf("resolveLayout(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Info("ignored")
	l.TraceContext(context.Background(), "ignored")

	if l.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger reports enabled")
	}

	if l.Level() != DefaultLevel {
		t.Errorf("zero Logger level = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.With(slog.String("k", "v")).Enabled(context.Background(), LevelError) {
		t.Error("With on zero Logger produced an enabled logger")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		logf   func(Logger, string, ...slog.Attr)
		min    Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		for _, format := range []Format{FormatText, FormatJSON} {
			t.Run(tt.name+"/"+format.String(), func(t *testing.T) {
				var buf bytes.Buffer

				tt.logf(Make(&buf, WithLevel(tt.min), WithFormat(format)), "msg")

				if got := buf.Len() > 0; got != tt.logged {
					t.Errorf("logged = %v, want %v", got, tt.logged)
				}
			})
		}
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
		With(slog.String("command", "render"))

	logger.Info("done", slog.Int("records", 3))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"level":   "INFO",
		"msg":     "done",
		"command": "render",
		"records": float64(3),
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}

	if _, ok := got["time"]; ok {
		t.Error("time present with layout none")
	}
}

func TestLogger_Styled(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithLevel(LevelTrace))

	logger.With(slog.String("cmd", "check")).
		Trace("parsed",
			slog.String("source", "a b"),
			slog.Group("pos", slog.Int("line", 1), slog.Int("column", 4)),
			slog.Any("error", errors.New("boom")),
		)

	line := buf.String()

	for _, want := range []string{
		"TRACE",
		"parsed",
		"cmd=check",
		`source="a b"`,
		"pos.line=1",
		"pos.column=4",
		`error="boom"`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q missing %q", line, want)
		}
	}

	if strings.Contains(line, "\x1b[") {
		t.Errorf("output to a buffer contains escape sequences: %q", line)
	}

	if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
		t.Errorf("want exactly one line, got %q", line)
	}
}

func TestLogger_StyledGroup(t *testing.T) {
	var buf bytes.Buffer

	h := newStyledHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, "")
	slog.New(h).WithGroup("req").Info("x", slog.String("id", "7"))

	if !strings.Contains(buf.String(), "req.id=7") {
		t.Errorf("output %q missing grouped key", buf.String())
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithTimeLayout("none")).Info("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller location missing from %q", buf.String())
	}

	buf.Reset()
	Make(&buf, WithCaller(false), WithTimeLayout("none")).Info("here")

	if strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller location present when disabled: %q", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug), WithFormat(FormatJSON))

	if base.Level() != LevelError {
		t.Errorf("Wrap changed the original level to %v", base.Level())
	}

	if wrapped.Level() != LevelDebug || wrapped.Format() != FormatJSON {
		t.Errorf("wrapped = %v/%v, want debug/json", wrapped.Level(), wrapped.Format())
	}

	wrapped.Debug("through")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("wrapped logger did not keep the output writer: %q", buf.String())
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	var wg sync.WaitGroup

	for i := range 100 {
		wg.Go(func() {
			logger.Info("concurrent", slog.Int("id", i))
		})
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("got %d lines, want 100", len(lines))
	}
}
