package cli

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func loadConfig(t *testing.T, src string) kong.Resolver {
	t.Helper()

	r, err := resolve(context.Background())(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	return r
}

func TestResolve_FlatKeys(t *testing.T) {
	r := loadConfig(t, "log-level: debug\nlog-pretty: false\n")

	if got := resolveFlag(t, r, "log-level"); got != "debug" {
		t.Errorf("log-level = %v, want debug", got)
	}

	if got := resolveFlag(t, r, "log-pretty"); got != false {
		t.Errorf("log-pretty = %v, want false", got)
	}

	if got := resolveFlag(t, r, "log-format"); got != nil {
		t.Errorf("log-format = %v, want nil", got)
	}
}

func TestResolve_NestedKeys(t *testing.T) {
	r := loadConfig(t, "log:\n  level: trace\n  time:\n    layout: kitchen\n")

	if got := resolveFlag(t, r, "log-level"); got != "trace" {
		t.Errorf("log-level = %v, want trace", got)
	}

	if got := resolveFlag(t, r, "log-time-layout"); got != "kitchen" {
		t.Errorf("log-time-layout = %v, want kitchen", got)
	}
}

func TestResolve_UnderscoreKeys(t *testing.T) {
	r := loadConfig(t, "log_format: json\n")

	if got := resolveFlag(t, r, "log-format"); got != "json" {
		t.Errorf("log-format = %v, want json", got)
	}
}

func TestResolve_NumbersBecomeStrings(t *testing.T) {
	r := loadConfig(t, "max-depth: 12\nratio: 0.5\npath: [a, 7]\n")

	if got := resolveFlag(t, r, "max-depth"); got != "12" {
		t.Errorf("max-depth = %#v, want \"12\"", got)
	}

	if got := resolveFlag(t, r, "ratio"); got != "0.5" {
		t.Errorf("ratio = %#v, want \"0.5\"", got)
	}

	got, ok := resolveFlag(t, r, "path").([]any)
	if !ok || !slices.Equal(got, []any{"a", "7"}) {
		t.Errorf("path = %#v, want [a 7]", resolveFlag(t, r, "path"))
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, src := range []string{"", "log-level: [unterminated\n"} {
		r := loadConfig(t, src)

		if got := resolveFlag(t, r, "log-level"); got != nil {
			t.Errorf("%q: log-level = %v, want nil", src, got)
		}
	}
}
