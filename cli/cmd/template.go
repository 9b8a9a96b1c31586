package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/caption/lang"
	"github.com/ardnew/caption/log"
	"github.com/ardnew/caption/record"
)

// templates is shared by every command run in this process.
var templates = lang.NewCache()

// templateSource returns the template text given either inline or by file.
// A file's final line ending is not part of the template.
func templateSource(ctx context.Context, inline, file string) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", ErrTemplateSource.With(slog.String("template-file", file))

	case file == "":
		// An empty inline template is valid and renders as an empty line.
		return inline, nil
	}

	var (
		data []byte
		err  error
	)

	if file == stdinSource {
		data, err = io.ReadAll(stdinFrom(ctx))
	} else {
		file = resolvePath(ctx, file)
		data, err = os.ReadFile(file)
	}

	if err != nil {
		return "", ErrReadTemplate.Wrap(err).With(slog.String("file", file))
	}

	src := strings.TrimSuffix(string(data), "\n")
	src = strings.TrimSuffix(src, "\r")

	return src, nil
}

// parseTemplate parses src through the shared cache.
func parseTemplate(
	ctx context.Context,
	src string,
	maxDepth int,
) (*lang.Template, error) {
	return templates.Parse(ctx, src,
		lang.WithMaxDepth(maxDepth),
		lang.WithLogger(log.Default()),
	)
}

// Selection chooses the records a command renders against.
type Selection struct {
	Set    []string `help:"Set a field on every record."                        placeholder:"KEY=VALUE" short:"D"`
	Filter string   `help:"Keep only records matching an expr predicate."       placeholder:"EXPR"      short:"w"`
	Index  int      `help:"Use only the record at this index, after filtering." default:"-1"            short:"n"`
}

// records loads the sources stored in ctx and applies the selection. With
// no sources the result is a single record holding only the --set fields.
func (s *Selection) records(ctx context.Context) ([]record.Record, error) {
	over, err := record.Parse(s.Set)
	if err != nil {
		return nil, err
	}

	filter, err := record.CompileFilter(s.Filter)
	if err != nil {
		return nil, err
	}

	recs := []record.Record{{}}

	if srcs := sourceFilesFrom(ctx); srcs != nil {
		recs, err = srcs.Records(ctx)
		if err != nil {
			return nil, err
		}
	}

	recs = filter.Apply(ctx, record.Overlay(recs, over))

	log.DebugContext(ctx, "records selected",
		slog.Int("count", len(recs)),
		slog.String("filter", filter.String()),
		slog.Int("index", s.Index),
	)

	if s.Index < 0 {
		return recs, nil
	}

	if s.Index >= len(recs) {
		return nil, ErrIndex.With(
			slog.Int("index", s.Index),
			slog.Int("count", len(recs)),
		)
	}

	return recs[s.Index : s.Index+1], nil
}
