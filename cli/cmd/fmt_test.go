package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/caption/lang"
)

func runFmt(t *testing.T, f *Fmt) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := f.Run(WithOutput(context.Background(), &out))

	return out.String(), err
}

func TestFmtText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"${a}", "${a}\n"},
		{"round( x , 2 )", "round(x,2)\n"},
		{`match(k,"a b")?${a}:`, "match(k,\"a b\")?${a}\n"},
		{"exists(a)?exists(b)?x:y:z", "exists(a)?exists(b)?x:y:z\n"},
	}

	for _, tt := range tests {
		got, err := runFmt(t, &Fmt{Template: tt.input, Format: "text"})
		if err != nil {
			t.Errorf("Fmt(%q) error = %v", tt.input, err)

			continue
		}

		if got != tt.want {
			t.Errorf("Fmt(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFmtJSON(t *testing.T) {
	for _, indent := range []int{0, 4} {
		got, err := runFmt(t, &Fmt{Template: "${a} round(b,1)", Format: "json", Indent: indent})
		if err != nil {
			t.Fatalf("Fmt error = %v", err)
		}

		if indent == 0 && strings.Count(got, "\n") != 1 {
			t.Errorf("compact JSON spans lines:\n%s", got)
		}

		var doc struct {
			Source string           `json:"source"`
			Nodes  []map[string]any `json:"nodes"`
		}

		if err := json.Unmarshal([]byte(got), &doc); err != nil {
			t.Fatalf("json.Unmarshal: %v\n%s", err, got)
		}

		if doc.Source != "${a} round(b,1)" || len(doc.Nodes) != 3 {
			t.Errorf("unexpected document: %+v", doc)
		}

		if doc.Nodes[2]["type"] != "round" {
			t.Errorf("node 2 type = %v, want round", doc.Nodes[2]["type"])
		}
	}
}

func TestFmtYAML(t *testing.T) {
	got, err := runFmt(t, &Fmt{Template: "exists(a)?yes", Format: "yaml", Indent: 2})
	if err != nil {
		t.Fatalf("Fmt error = %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal: %v\n%s", err, got)
	}

	if doc["source"] != "exists(a)?yes" {
		t.Errorf("source = %v, want exists(a)?yes", doc["source"])
	}
}

func TestFmtErrors(t *testing.T) {
	if _, err := runFmt(t, &Fmt{Template: "${a", Format: "text"}); !errors.Is(err, lang.ErrSyntax) {
		t.Errorf("invalid template error = %v, want %v", err, lang.ErrSyntax)
	}

	if _, err := runFmt(t, &Fmt{Template: "${a}", Format: "toml"}); !errors.Is(err, ErrFormat) {
		t.Errorf("unknown format error = %v, want %v", err, ErrFormat)
	}
}
