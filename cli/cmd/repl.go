package cmd

import (
	"context"

	"github.com/ardnew/caption/cli/cmd/repl"
	"github.com/ardnew/caption/log"
)

// Repl starts the interactive template preview.
type Repl struct {
	Selection `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	recs, err := r.records(ctx)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, recs, cacheDir, log.Default())
}
