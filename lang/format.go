package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// String returns the canonical source of ns. For sequences produced by the
// parser, parsing the result yields a sequence equal to ns.
func (ns Nodes) String() string {
	var sb strings.Builder

	formatNodes(&sb, ns, false)

	return sb.String()
}

// String returns the canonical source of the template.
func (t *Template) String() string { return t.nodes.String() }

// Format writes the canonical template source to the writer.
func (t *Template) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, t.nodes.String())

	return err
}

// FormatJSON writes the syntax tree as JSON to the writer.
func (t *Template) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(t, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(t)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the syntax tree as YAML to the writer.
func (t *Template) FormatYAML(_ context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalWithOptions(t.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// formatNodes writes ns. Inside a branch (enclosed) a conditional always
// writes its ':' so the enclosing branch's ':' is not taken as its own.
func formatNodes(sb *strings.Builder, ns Nodes, enclosed bool) {
	for _, n := range ns {
		switch n := n.(type) {
		case *Literal:
			formatLiteral(sb, n.Text)

		case *Substitution:
			sb.WriteString(openSubst)
			sb.WriteString(n.Name)
			sb.WriteByte('}')

		case *Round:
			sb.WriteString(openRound)
			sb.WriteString(n.Name)
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(n.Precision))
			sb.WriteByte(')')

		case *Conditional:
			formatPredicate(sb, n.Predicate)
			sb.WriteByte('?')
			formatNodes(sb, n.Then, true)

			if len(n.Else) > 0 || enclosed {
				sb.WriteByte(':')
				formatNodes(sb, n.Else, enclosed)
			}
		}
	}
}

// formatLiteral writes text, escaping each "${...}" it contains. Everything
// from "${" through the next '}' is written verbatim after the escape, as the
// parser reads it back.
func formatLiteral(sb *strings.Builder, text string) {
	for {
		before, after, found := strings.Cut(text, openSubst)
		sb.WriteString(before)

		if !found {
			return
		}

		sb.WriteString(openEscaped)

		raw, rest, closed := strings.Cut(after, "}")
		if !closed {
			sb.WriteString(after)

			return
		}

		sb.WriteString(raw)
		sb.WriteByte('}')

		text = rest
	}
}

func formatPredicate(sb *strings.Builder, pred Predicate) {
	switch pred := pred.(type) {
	case *Match:
		sb.WriteString(openMatch)
		sb.WriteString(pred.Name)
		sb.WriteByte(',')
		sb.WriteString(pred.Operand.String())
		sb.WriteByte(')')

	case *Exists:
		sb.WriteString(openExists)
		sb.WriteString(pred.Name)
		sb.WriteByte(')')
	}
}

// String returns the operand as it appears in source. Quoted operands are
// written with double quotes, escaping backslashes and double quotes.
func (o Operand) String() string {
	if o.Kind != OperandQuoted {
		return o.Text
	}

	var sb strings.Builder

	sb.WriteByte('"')

	for i := range len(o.Text) {
		if c := o.Text[i]; c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}

		sb.WriteByte(o.Text[i])
	}

	sb.WriteByte('"')

	return sb.String()
}
