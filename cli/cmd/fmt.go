package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/caption/log"
)

// Fmt prints a parsed template in canonical text, JSON or YAML form.
type Fmt struct {
	Template     string `arg:"" help:"Template source."                           optional:""`
	TemplateFile string `help:"Read the template from a file or '-' for stdin." placeholder:"FILE" short:"t"`
	MaxDepth     int    `default:"${maxDepth}" help:"Maximum conditional nesting depth."`

	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML (0 for compact)." short:"i"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := templateSource(ctx, f.Template, f.TemplateFile)
	if err != nil {
		return err
	}

	tmpl, err := parseTemplate(ctx, src, f.MaxDepth)
	if err != nil {
		return ErrInvalid.Wrap(err).With(slog.String("format", f.Format))
	}

	log.TraceContext(ctx, "format template",
		slog.String("format", f.Format),
		slog.Int("indent", f.Indent),
	)

	w := outputFrom(ctx)

	switch f.Format {
	case "", "text":
		return tmpl.Format(ctx, w)
	case "json":
		return tmpl.FormatJSON(ctx, w, f.Indent)
	case "yaml":
		return tmpl.FormatYAML(ctx, w, f.Indent)
	default:
		return ErrFormat.With(slog.String("format", f.Format))
	}
}
