package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ardnew/caption/lang"
)

// Check validates templates and prints a diagnostic for each invalid one.
type Check struct {
	Templates []string `arg:"" help:"Templates to check."                                    optional:""`
	File      string   `help:"Check each non-blank line of a file or '-' for stdin." placeholder:"FILE" short:"f"`
	Quiet     bool     `help:"Print nothing for valid templates."                                     short:"q"`
	MaxDepth  int      `default:"${maxDepth}" help:"Maximum conditional nesting depth."`
}

// checkItem is one template to check and the label used to report it.
type checkItem struct {
	label  string
	source string
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	items := make([]checkItem, 0, len(c.Templates))

	for i, src := range c.Templates {
		items = append(items, checkItem{"arg " + strconv.Itoa(i+1), src})
	}

	if c.File != "" {
		lines, err := c.readLines(ctx)
		if err != nil {
			return err
		}

		items = append(items, lines...)
	}

	w := bufio.NewWriter(outputFrom(ctx))
	defer w.Flush()

	invalid := 0

	for _, item := range items {
		tmpl, err := parseTemplate(ctx, item.source, c.MaxDepth)
		if err == nil {
			if !c.Quiet {
				fmt.Fprintf(w, "%s: ok: %s\n", item.label, tmpl)
			}

			continue
		}

		invalid++

		fmt.Fprintf(w, "%s: %v\n", item.label, err)

		var se *lang.SyntaxError
		if errors.As(err, &se) {
			w.WriteString(se.Snippet())
		}
	}

	if invalid > 0 {
		return ErrInvalid.With(
			slog.Int("invalid", invalid),
			slog.Int("checked", len(items)),
		)
	}

	return nil
}

func (c *Check) readLines(ctx context.Context) ([]checkItem, error) {
	name := c.File

	var r io.Reader

	if name == stdinSource {
		r = stdinFrom(ctx)
	} else {
		name = resolvePath(ctx, name)

		file, err := os.Open(name)
		if err != nil {
			return nil, ErrReadTemplate.Wrap(err).With(slog.String("file", name))
		}
		defer file.Close()

		r = file
	}

	var items []checkItem

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		items = append(items, checkItem{c.File + ":" + strconv.Itoa(n), line})
	}

	if err := scanner.Err(); err != nil {
		return nil, ErrReadTemplate.Wrap(err).With(slog.String("file", name))
	}

	return items, nil
}
