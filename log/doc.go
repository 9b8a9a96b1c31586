// Package log is a small leveled logger built on [log/slog].
//
// A [Logger] is an immutable value. Options given to [Make] or
// [Logger.Wrap] fix its level, format, time layout and whether the caller
// is recorded; [Logger.With] returns a copy that adds attributes. The zero
// Logger discards everything, so it can sit unset in a struct.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339"))
//	logger.Info("rendered", slog.Int("records", n))
//
// # Levels
//
// Besides the four slog levels there is [LevelTrace], below Debug, for
// output that is only useful when following a single operation.
//
// # Formats
//
// [FormatText] writes one line per message. When pretty output is enabled
// (the default) the line is styled with lipgloss for the terminal the
// writer is attached to; other writers receive plain text. [FormatJSON]
// writes one JSON object per line using [slog.JSONHandler].
//
// # Package logger
//
// The package-level functions ([Info], [Warn] and so on) log through a
// shared Logger writing to standard error. [Config] reconfigures it.
// Functions without a context argument use [DefaultContextProvider].
package log
