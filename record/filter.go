package record

import (
	"context"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/caption/log"
)

// Filter selects records with a compiled expr-lang expression. Record
// fields are the expression's variables; a field a record lacks is nil.
// The nil Filter selects every record.
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles a boolean expression such as
//
//	status == "final" && depth > 10
//
// A blank source returns a nil Filter.
func CompileFilter(source string) (*Filter, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}

	program, err := expr.Compile(source,
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, ErrFilter.Wrap(err).With(slog.String("filter", source))
	}

	return &Filter{source: source, program: program}, nil
}

// String returns the expression source.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.source
}

// Match reports whether rec satisfies the filter.
func (f *Filter) Match(rec Record) (bool, error) {
	if f == nil {
		return true, nil
	}

	env := map[string]any(rec)
	if env == nil {
		env = map[string]any{}
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, ErrFilter.Wrap(err).With(slog.String("filter", f.source))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Apply returns the records that satisfy the filter, in order. A record on
// which the expression fails at run time (for example, comparing a missing
// field with a number) is not selected.
func (f *Filter) Apply(ctx context.Context, records []Record) []Record {
	if f == nil {
		return records
	}

	var kept []Record

	for i, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			log.DebugContext(ctx, "filter skipped record",
				slog.Int("index", i),
				slog.Any("error", err))

			continue
		}

		if ok {
			kept = append(kept, rec)
		}
	}

	return kept
}
