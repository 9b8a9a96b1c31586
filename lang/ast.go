package lang

import (
	"iter"
	"slices"
	"strconv"
)

// Position identifies a location in template source.
// Offset is a zero-based byte offset; Line and Column are one-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is one element of a parsed template.
// The concrete types are [*Literal], [*Substitution], [*Round] and
// [*Conditional].
type Node interface {
	// Position returns where the node's source begins.
	Position() Position

	node()
}

// Nodes is an ordered sequence of nodes; order is rendering order.
type Nodes []Node

// Literal is text emitted verbatim.
type Literal struct {
	Text string
	Pos  Position
}

// Substitution is ${Name}.
type Substitution struct {
	Name string
	Pos  Position
}

// Round is round(Name,Precision).
type Round struct {
	Name      string
	Precision int
	Pos       Position
}

// Conditional chooses Then or Else depending on Predicate.
type Conditional struct {
	Predicate Predicate
	Then      Nodes
	Else      Nodes
	Pos       Position
}

func (n *Literal) Position() Position      { return n.Pos }
func (n *Substitution) Position() Position { return n.Pos }
func (n *Round) Position() Position        { return n.Pos }
func (n *Conditional) Position() Position  { return n.Pos }

func (*Literal) node()      {}
func (*Substitution) node() {}
func (*Round) node()        {}
func (*Conditional) node()  {}

// Predicate is the condition guarding a [Conditional].
// The concrete types are [*Match] and [*Exists].
type Predicate interface {
	// Field returns the name of the field the predicate inspects.
	Field() string

	predicate()
}

// Match is match(Name,Operand).
type Match struct {
	Name    string
	Operand Operand
}

// Exists is exists(Name).
type Exists struct {
	Name string
}

func (p *Match) Field() string  { return p.Name }
func (p *Exists) Field() string { return p.Name }

func (*Match) predicate()  {}
func (*Exists) predicate() {}

// OperandKind classifies the literal given to match.
type OperandKind int

const (
	// OperandQuoted is a quoted string with its quotes removed.
	OperandQuoted OperandKind = iota

	// OperandInteger is a bare token made only of decimal digits.
	OperandInteger

	// OperandBare is any other bare token, taken as a string.
	OperandBare
)

// String returns a string representation of the operand kind.
func (k OperandKind) String() string {
	switch k {
	case OperandQuoted:
		return "Quoted"

	case OperandInteger:
		return "Integer"

	case OperandBare:
		return "Bare"

	default:
		return "Unknown"
	}
}

// Operand is the literal side of a match predicate.
// Text holds the unquoted string or the token exactly as written.
type Operand struct {
	Kind OperandKind
	Text string
}

// Value returns the operand as a [Value].
// Integers too large for int64 fall back to a float.
func (o Operand) Value() Value {
	if o.Kind == OperandInteger {
		if i, err := strconv.ParseInt(o.Text, 10, 64); err == nil {
			return Int(i)
		}

		if f, err := strconv.ParseFloat(o.Text, 64); err == nil {
			return Float(f)
		}
	}

	return String(o.Text)
}

// Walk returns an iterator over every node in ns, depth first, visiting a
// conditional before the nodes of its branches.
func (ns Nodes) Walk() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ns.walk(yield)
	}
}

func (ns Nodes) walk(yield func(Node) bool) bool {
	for _, n := range ns {
		if !yield(n) {
			return false
		}

		if c, ok := n.(*Conditional); ok {
			if !c.Then.walk(yield) || !c.Else.walk(yield) {
				return false
			}
		}
	}

	return true
}

// Fields returns the distinct field names referenced anywhere in ns, in
// order of first appearance.
func (ns Nodes) Fields() []string {
	var names []string

	add := func(name string) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	for n := range ns.Walk() {
		switch n := n.(type) {
		case *Substitution:
			add(n.Name)

		case *Round:
			add(n.Name)

		case *Conditional:
			add(n.Predicate.Field())
		}
	}

	return names
}

// Equal reports whether ns and other have the same structure and content.
// Positions are ignored.
func (ns Nodes) Equal(other Nodes) bool {
	return slices.EqualFunc(ns, other, equalNode)
}

func equalNode(a, b Node) bool {
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)

		return ok && a.Text == b.Text

	case *Substitution:
		b, ok := b.(*Substitution)

		return ok && a.Name == b.Name

	case *Round:
		b, ok := b.(*Round)

		return ok && a.Name == b.Name && a.Precision == b.Precision

	case *Conditional:
		b, ok := b.(*Conditional)

		return ok &&
			equalPredicate(a.Predicate, b.Predicate) &&
			a.Then.Equal(b.Then) &&
			a.Else.Equal(b.Else)

	default:
		return false
	}
}

func equalPredicate(a, b Predicate) bool {
	switch a := a.(type) {
	case *Match:
		b, ok := b.(*Match)

		return ok && a.Name == b.Name && a.Operand == b.Operand

	case *Exists:
		b, ok := b.(*Exists)

		return ok && a.Name == b.Name

	default:
		return false
	}
}
