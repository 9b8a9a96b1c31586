package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/caption/lang"
	"github.com/ardnew/caption/record"
)

func TestTemplateSource(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "caption.tmpl", "${a} b\r\n")
	blank := writeFile(t, dir, "blank.tmpl", "\n\n")

	ctx := WithStdin(context.Background(), strings.NewReader("from ${stdin}\n"))

	tests := []struct {
		name    string
		inline  string
		file    string
		want    string
		wantErr error
	}{
		{name: "inline", inline: "${x}", want: "${x}"},
		{name: "empty inline", want: ""},
		{name: "file trims one line ending", file: file, want: "${a} b"},
		{name: "file keeps inner blank lines", file: blank, want: "\n"},
		{name: "stdin", file: "-", want: "from ${stdin}"},
		{name: "both", inline: "x", file: file, wantErr: ErrTemplateSource},
		{name: "missing", file: filepath.Join(dir, "none"), wantErr: ErrReadTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := templateSource(ctx, tt.inline, tt.file)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("templateSource() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("templateSource() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("templateSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTemplateCached(t *testing.T) {
	ctx := context.Background()

	a, err := parseTemplate(ctx, "${cached} x", lang.DefaultMaxDepth)
	if err != nil {
		t.Fatal(err)
	}

	b, err := parseTemplate(ctx, "${cached} x", lang.DefaultMaxDepth)
	if err != nil {
		t.Fatal(err)
	}

	if a != b {
		t.Error("parseTemplate returned distinct templates for the same source")
	}

	_, err = parseTemplate(ctx, "${cached", lang.DefaultMaxDepth)
	if !errors.Is(err, lang.ErrSyntax) {
		t.Errorf("parseTemplate() error = %v, want %v", err, lang.ErrSyntax)
	}
}

func names(recs []record.Record) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Lookup("name").String())
	}

	return out
}

func TestSelectionRecords(t *testing.T) {
	path := writeFile(t, t.TempDir(), "shots.yaml",
		"- {name: a, iso: 100}\n- {name: b, iso: 800}\n- {name: c}\n")

	withSource := WithSourceFiles(context.Background(), []string{path})

	tests := []struct {
		name    string
		ctx     context.Context
		sel     Selection
		want    []string
		wantErr error
	}{
		{name: "all", ctx: withSource, sel: Selection{Index: -1}, want: []string{"a", "b", "c"}},
		{name: "filter", ctx: withSource, sel: Selection{Filter: "iso > 200", Index: -1}, want: []string{"b"}},
		{name: "index", ctx: withSource, sel: Selection{Index: 2}, want: []string{"c"}},
		{name: "index after filter", ctx: withSource, sel: Selection{Filter: "iso != nil", Index: 1}, want: []string{"b"}},
		{name: "set overrides", ctx: withSource, sel: Selection{Set: []string{"name=z"}, Index: -1}, want: []string{"z", "z", "z"}},
		{name: "no sources", ctx: context.Background(), sel: Selection{Set: []string{"name=solo"}, Index: -1}, want: []string{"solo"}},
		{name: "index out of range", ctx: withSource, sel: Selection{Index: 3}, wantErr: ErrIndex},
		{name: "bad pair", ctx: withSource, sel: Selection{Set: []string{"novalue"}, Index: -1}, wantErr: record.ErrPair},
		{name: "bad filter", ctx: withSource, sel: Selection{Filter: "iso >", Index: -1}, wantErr: record.ErrFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := tt.sel.records(tt.ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("records() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("records() error = %v", err)
			}

			if got := names(recs); !slices.Equal(got, tt.want) {
				t.Errorf("records() names = %q, want %q", got, tt.want)
			}
		})
	}
}
