package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/caption/lang"
	"github.com/ardnew/caption/record"
)

// Fields lists the field names a template references, one per line.
type Fields struct {
	Template     string `arg:"" help:"Template source."                           optional:""`
	TemplateFile string `help:"Read the template from a file or '-' for stdin." placeholder:"FILE" short:"t"`
	MaxDepth     int    `default:"${maxDepth}" help:"Maximum conditional nesting depth."`

	Missing bool `help:"List only fields absent from at least one loaded record." short:"m"`
}

// Run executes the fields command.
func (f *Fields) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := templateSource(ctx, f.Template, f.TemplateFile)
	if err != nil {
		return err
	}

	tmpl, err := parseTemplate(ctx, src, f.MaxDepth)
	if err != nil {
		return ErrInvalid.Wrap(err).With(slog.String("command", "fields"))
	}

	names := tmpl.Fields()

	if f.Missing {
		var recs []record.Record

		if srcs := sourceFilesFrom(ctx); srcs != nil {
			recs, err = srcs.Records(ctx)
			if err != nil {
				return err
			}
		}

		names = slices.DeleteFunc(names, func(name string) bool {
			return !missingFrom(recs, name)
		})
	}

	w := bufio.NewWriter(outputFrom(ctx))

	for _, name := range names {
		_, _ = w.WriteString(name)
		_ = w.WriteByte('\n')
	}

	return w.Flush()
}

// missingFrom reports whether any record lacks name, or there are no records.
func missingFrom(recs []record.Record, name string) bool {
	if len(recs) == 0 {
		return true
	}

	return slices.ContainsFunc(recs, func(rec record.Record) bool {
		return rec.Lookup(name).Kind() == lang.KindAbsent
	})
}
