package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/caption/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("application started", slog.String("version", "1.0.0"))
	logger.Debug("not written")
	// Output:
	// level=INFO msg="application started" version=1.0.0
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.Trace("cache lookup", slog.Bool("hit", true))
	// Output:
	// {"level":"TRACE","msg":"cache lookup","hit":true}
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none")).
		With(slog.String("command", "render"))

	logger.WarnContext(context.Background(), "field missing", slog.String("name", "depth"))
	// Output:
	// level=WARN msg="field missing" command=render name=depth
}
