package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/caption/lang"
)

func TestCheckRun(t *testing.T) {
	var out bytes.Buffer

	ctx := WithOutput(context.Background(), &out)

	c := &Check{
		Templates: []string{"${a}", "${a", "match(x,1)?y"},
		MaxDepth:  lang.DefaultMaxDepth,
	}

	err := c.Run(ctx)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Check.Run() error = %v, want %v", err, ErrInvalid)
	}

	got := out.String()

	for _, want := range []string{
		"arg 1: ok: ${a}\n",
		"arg 2: unterminated",
		"1 | ${a\n",
		"arg 3: ok: match(x,1)?y\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCheckRunQuiet(t *testing.T) {
	var out bytes.Buffer

	ctx := WithOutput(context.Background(), &out)

	c := &Check{Templates: []string{"${a}", "plain"}, Quiet: true}
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Check.Run() error = %v", err)
	}

	if out.Len() != 0 {
		t.Errorf("output = %q, want none", out.String())
	}
}

func TestCheckRunFile(t *testing.T) {
	var out bytes.Buffer

	ctx := WithOutput(context.Background(), &out)
	ctx = WithStdin(ctx, strings.NewReader("${a}\r\n\n   \nexists(b\n"))

	err := (&Check{File: "-"}).Run(ctx)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Check.Run() error = %v, want %v", err, ErrInvalid)
	}

	got := out.String()

	if !strings.Contains(got, "-:1: ok: ${a}\n") {
		t.Errorf("output missing line 1 result:\n%s", got)
	}

	if !strings.Contains(got, "-:4: ") {
		t.Errorf("output missing line 4 result:\n%s", got)
	}

	if strings.Contains(got, "-:2") || strings.Contains(got, "-:3") {
		t.Errorf("output reports blank lines:\n%s", got)
	}
}
