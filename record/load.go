package record

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/caption/log"
)

// Load reads records from a JSON or YAML stream. Each document is either a
// mapping, which yields one record, or a sequence of mappings. A YAML stream
// may hold several documents; their records are concatenated in order. An
// empty stream yields no records.
func Load(ctx context.Context, r io.Reader) ([]Record, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	dec := yaml.NewDecoder(ra)

	var records []Record

	for doc := 0; ; doc++ {
		var v any

		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.Int("document", doc))
		}

		recs, err := shape(v)
		if err != nil {
			return nil, err
		}

		records = append(records, recs...)
	}

	log.TraceContext(ctx, "records loaded",
		slog.Int("count", len(records)))

	return records, nil
}

// shape converts one decoded document to records.
func shape(v any) ([]Record, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil

	case map[string]any:
		return []Record{v}, nil

	case []any:
		records := make([]Record, 0, len(v))

		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, ErrShape.With(slog.Int("index", i))
			}

			records = append(records, m)
		}

		return records, nil

	default:
		return nil, ErrShape
	}
}
