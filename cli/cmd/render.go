package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/caption/log"
)

// Render renders a template once per selected record, one line each.
type Render struct {
	Selection `embed:""`

	Template     string `arg:"" help:"Template source."                           optional:""`
	TemplateFile string `help:"Read the template from a file or '-' for stdin." placeholder:"FILE" short:"t"`
	MaxDepth     int    `default:"${maxDepth}" help:"Maximum conditional nesting depth."`
	Jobs         int    `default:"0" help:"Render records in parallel (0 uses every CPU)." short:"j"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := templateSource(ctx, r.Template, r.TemplateFile)
	if err != nil {
		return err
	}

	tmpl, err := parseTemplate(ctx, src, r.MaxDepth)
	if err != nil {
		return ErrInvalid.Wrap(err).With(slog.String("command", "render"))
	}

	recs, err := r.records(ctx)
	if err != nil {
		return err
	}

	jobs := r.Jobs
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one slot, so output order follows record order.
	lines := make([]string, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, rec := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			lines[i] = tmpl.Render(gctx, rec)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	w := bufio.NewWriter(outputFrom(ctx))

	for _, line := range lines {
		_, _ = w.WriteString(line)
		_ = w.WriteByte('\n')
	}

	log.DebugContext(ctx, "render complete",
		slog.Int("records", len(recs)),
		slog.Int("jobs", jobs),
	)

	return w.Flush()
}
