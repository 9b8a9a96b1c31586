package log

import "io"

// Option configures a [Logger].
type Option func(*config)

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithOutput sets the writer log messages are written to.
// A nil writer discards all output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel sets the minimum level of messages that are written.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the timestamp layout. Named layouts such as "RFC3339"
// or "Kitchen" are recognised case-insensitively; any other text is passed
// to [time.Time.Format] verbatim. An empty layout or "none" omits
// timestamps.
func WithTimeLayout(layout string) Option {
	return func(c *config) { c.timeLayout = resolveLayout(layout) }
}

// WithCaller controls whether the source location of the call is logged.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty controls whether text output is styled for a terminal. It has
// no effect on JSON output.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}
