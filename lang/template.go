package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/caption/log"
)

// DefaultMaxDepth is the default limit on conditional nesting.
const DefaultMaxDepth = 64

// Template is a parsed template. It is immutable and safe to render from
// multiple goroutines at once.
type Template struct {
	source string
	nodes  Nodes
	opts   optionsKey // configuration options
	logger log.Logger // outside optionsKey, doesn't affect cache
}

// optionsKey holds parse options.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	maxDepth int
}

// Option configures parsing.
type Option func(*Template)

// WithMaxDepth sets the maximum nesting depth of conditionals.
// Values below 1 restore [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(t *Template) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		t.opts.maxDepth = depth
	}
}

// WithLogger sets the logger used for trace output while parsing and
// rendering.
func WithLogger(logger log.Logger) Option {
	return func(t *Template) {
		t.logger = logger
	}
}

func applyDefaults(t *Template) {
	t.opts.maxDepth = DefaultMaxDepth
}

func applyOptions(t *Template, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
}

// Source returns the text the template was parsed from.
func (t *Template) Source() string { return t.source }

// Nodes returns the parsed node sequence. Callers must not modify it.
func (t *Template) Nodes() Nodes { return t.nodes }

// Fields returns the distinct field names the template references.
func (t *Template) Fields() []string { return t.nodes.Fields() }

// Render evaluates the template against l.
func (t *Template) Render(ctx context.Context, l Lookup) string {
	out := Evaluate(t.nodes, l)

	t.logger.TraceContext(ctx, "render",
		slog.Int("source_bytes", len(t.source)),
		slog.Int("output_bytes", len(out)),
	)

	return out
}

// ParseReader parses a template read from r. The whole input is one
// template; trailing newlines are part of it.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Template, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a template from s.
func ParseString(ctx context.Context, s string, opts ...Option) (*Template, error) {
	t := &Template{source: s}

	applyDefaults(t)
	applyOptions(t, opts...)

	p := newParser(s, t.opts.maxDepth)

	nodes, err := p.parseTemplate()
	if err != nil {
		t.logger.TraceContext(ctx, "parse failed",
			slog.Any("error", err))

		return nil, err
	}

	t.nodes = nodes

	t.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(s)),
		slog.Int("node_count", len(nodes)),
	)

	return t, nil
}

// MustParse is like [ParseString] but panics if s cannot be parsed.
// It is meant for templates fixed at compile time.
func MustParse(s string, opts ...Option) *Template {
	t, err := ParseString(context.Background(), s, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Interpret parses s and renders it against l in one step.
func Interpret(ctx context.Context, s string, l Lookup) (string, error) {
	t, err := ParseString(ctx, s)
	if err != nil {
		return "", err
	}

	return t.Render(ctx, l), nil
}
