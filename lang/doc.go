// Package lang implements the caption template language: short single-line
// templates of literal text with field substitutions, numeric rounding and
// inline conditionals, rendered against a record of named values.
//
// # Philosophy
//
// Parsing and rendering are separate steps. [ParseString] turns source text
// into an immutable tree of [Node] values without looking at any data;
// [Evaluate] (or [Template.Render]) walks that tree against a [Lookup]. A
// template parsed once may be rendered against many records, concurrently.
//
// Parsing fails only on malformed templates, with a [*SyntaxError]. Rendering
// never fails: a missing field or a value of the wrong type renders as empty
// text or selects the false branch of a conditional.
//
// # Grammar
//
// Informal EBNF:
//
//	Template     → Sequence(EOF)
//	Sequence(t)  → ( Text | Escaped | Substitution | Round | Conditional )* t
//	Escaped      → '\${' Name '}'
//	Substitution → '${' Name '}'
//	Round        → 'round(' Name ',' Digits ')'
//	Conditional  → Predicate '?' Sequence(':') [ ':' Sequence(t) ]
//	Predicate    → 'match(' Name ',' Literal ')' | 'exists(' Name ')'
//	Literal      → QuotedString | BareToken
//
// The true branch of a conditional ends at the first ':' at its own level.
// The false branch runs to the end of the enclosing sequence. A conditional
// met while scanning a branch is parsed whole, including its own ':', so
//
//	match(a,1)?match(b,2)?X:Y:Z
//
// reads as match(a,1) ? (match(b,2) ? X : Y) : Z. Colons outside any
// conditional branch are ordinary text.
//
// Calls are recognised only at a word boundary, so "around(" is text.
//
// # Example
//
//	Site ${site}: round(depth,1) m
//	exists(note)?${note}:no note
//	match(status,"final")?Final:Draft
//	match(grade,3)?high:match(grade,2)?medium:low
//	Price \${amount}
//
// The last line renders the text "Price ${amount}".
//
// # Limitations
//
// A literal ':' cannot appear inside a conditional branch; it ends the
// branch. There is no escape for it.
package lang
