package record

import (
	"log/slog"
	"maps"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/caption/lang"
)

// Record is one row of named values. Nested mappings are reached with
// dotted names, as described by [lang.Map].
type Record = lang.Map

// Errors reported by this package.
var (
	ErrDecode = lang.NewError("cannot decode records")
	ErrShape  = lang.NewError("document is not a mapping or a sequence of mappings")
	ErrPair   = lang.NewError("expected key=value")
	ErrFilter = lang.NewError("invalid filter")
)

// nullWords are the YAML spellings of null accepted in key=value pairs.
var nullWords = []string{"null", "Null", "NULL", "~"}

// Parse builds a record from key=value pairs. Each value is typed as a YAML
// scalar would be (integers, floats, booleans and null); anything else,
// including text YAML reads as a collection, is kept as a string. A later
// pair overrides an earlier one with the same key.
func Parse(pairs []string) (Record, error) {
	rec := make(Record, len(pairs))

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")

		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, ErrPair.With(slog.String("pair", pair))
		}

		rec[key] = scalar(raw)
	}

	return rec, nil
}

func scalar(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	switch v.(type) {
	case nil:
		for _, w := range nullWords {
			if strings.TrimSpace(raw) == w {
				return nil
			}
		}

		return raw

	case map[string]any, []any, map[any]any:
		return raw

	default:
		return v
	}
}

// Overlay returns copies of records with every field of over set on each.
// The input records are not modified. An empty over returns records as is.
func Overlay(records []Record, over Record) []Record {
	if len(over) == 0 {
		return records
	}

	out := make([]Record, len(records))

	for i, rec := range records {
		merged := maps.Clone(rec)
		if merged == nil {
			merged = make(Record, len(over))
		}

		maps.Copy(merged, over)
		out[i] = merged
	}

	return out
}
