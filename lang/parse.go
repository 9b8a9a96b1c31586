package lang

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxPrecision is the largest number of fractional digits round accepts.
const MaxPrecision = 100

// Opening delimiters of the template constructs.
const (
	openSubst   = "${"
	openEscaped = `\${`
	openRound   = "round("
	openMatch   = "match("
	openExists  = "exists("
)

// parser holds the parser state.
type parser struct {
	input    string
	pos      int
	line     int
	col      int
	depth    int
	maxDepth int
}

func newParser(s string, maxDepth int) *parser {
	return &parser{
		input:    s,
		line:     1,
		col:      1,
		maxDepth: maxDepth,
	}
}

// parseTemplate parses the entire input. Colons at this level are text.
func (p *parser) parseTemplate() (Nodes, error) {
	return p.parseSequence(false)
}

// parseSequence parses nodes until end of input, or until a bare ':' when
// colon is set. The ':' is left for the caller.
func (p *parser) parseSequence(colon bool) (Nodes, error) {
	var (
		nodes Nodes
		text  strings.Builder
		start Position
	)

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, &Literal{Text: text.String(), Pos: start})
			text.Reset()
		}
	}

	for !p.eof() {
		if colon && p.peekByte() == ':' {
			break
		}

		pos := p.position()

		switch {
		case p.hasPrefix(openEscaped):
			raw, err := p.parseEscaped()
			if err != nil {
				return nil, err
			}

			if text.Len() == 0 {
				start = pos
			}

			text.WriteString(openSubst + raw + "}")

		case p.hasPrefix(openSubst):
			flush()

			n, err := p.parseSubstitution()
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, n)

		case p.atCall(openRound):
			flush()

			n, err := p.parseRound()
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, n)

		case p.atCall(openMatch), p.atCall(openExists):
			flush()

			n, err := p.parseConditional(colon)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, n)

		default:
			if text.Len() == 0 {
				start = pos
			}

			text.WriteString(p.next())
		}
	}

	flush()

	return nodes, nil
}

// parseEscaped parses \${...} and returns the text between the braces.
func (p *parser) parseEscaped() (string, error) {
	pos := p.position()

	p.skip(len(openEscaped))

	raw, stop := p.scanTo("}")
	if stop == 0 {
		return "", p.errorf(openEscaped, ReasonUnterminated, pos)
	}

	p.advance() // skip '}'

	return raw, nil
}

// parseSubstitution parses: "${" Identifier "}".
func (p *parser) parseSubstitution() (*Substitution, error) {
	pos := p.position()

	p.skip(len(openSubst))

	raw, stop := p.scanTo("}")
	if stop == 0 {
		return nil, p.errorf(openSubst, ReasonUnterminated, pos)
	}

	p.advance() // skip '}'

	name := strings.TrimSpace(raw)
	if name == "" {
		return nil, p.errorf(openSubst, ReasonEmptyName, pos)
	}

	return &Substitution{Name: name, Pos: pos}, nil
}

// parseRound parses: "round(" Identifier "," Digits ")".
func (p *parser) parseRound() (*Round, error) {
	pos := p.position()

	p.skip(len(openRound))

	name, err := p.parseName(openRound, pos, true)
	if err != nil {
		return nil, err
	}

	raw, stop := p.scanTo(")")
	if stop == 0 {
		return nil, p.errorf(openRound, ReasonUnterminated, pos)
	}

	p.advance() // skip ')'

	digits := strings.TrimSpace(raw)
	if !isDigits(digits) {
		return nil, p.errorf(openRound, ReasonPrecision, pos)
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n > MaxPrecision {
		return nil, p.errorf(openRound, ReasonPrecisionMax, pos)
	}

	return &Round{Name: name, Precision: n, Pos: pos}, nil
}

// parseConditional parses: Predicate "?" Sequence(':') [":" Sequence].
//
// The false branch ends where the enclosing sequence ends: at a bare ':'
// when enclosed is set, otherwise at end of input. A nested conditional
// consumes its own ':' before the enclosing branch looks for one.
func (p *parser) parseConditional(enclosed bool) (*Conditional, error) {
	pos := p.position()

	construct := openExists
	if p.hasPrefix(openMatch) {
		construct = openMatch
	}

	if p.depth >= p.maxDepth {
		return nil, p.errorf(construct, ReasonTooDeep, pos)
	}

	pred, err := p.parsePredicate(construct, pos)
	if err != nil {
		return nil, err
	}

	if !p.expect('?') {
		return nil, p.errorf(construct, ReasonMissingQuery, pos)
	}

	p.depth++
	defer func() { p.depth-- }()

	then, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}

	var els Nodes

	if p.expect(':') {
		els, err = p.parseSequence(enclosed)
		if err != nil {
			return nil, err
		}
	}

	return &Conditional{
		Predicate: pred,
		Then:      then,
		Else:      els,
		Pos:       pos,
	}, nil
}

// parsePredicate parses: "match(" Identifier "," LiteralValue ")"
// or "exists(" Identifier ")".
func (p *parser) parsePredicate(construct string, pos Position) (Predicate, error) {
	p.skip(len(construct))

	if construct == openExists {
		name, err := p.parseName(construct, pos, false)
		if err != nil {
			return nil, err
		}

		return &Exists{Name: name}, nil
	}

	name, err := p.parseName(construct, pos, true)
	if err != nil {
		return nil, err
	}

	operand, err := p.parseOperand(construct, pos)
	if err != nil {
		return nil, err
	}

	return &Match{Name: name, Operand: operand}, nil
}

// parseName parses a field name argument. When comma is set the name must be
// followed by ',' (which is consumed); otherwise by ')' (also consumed).
func (p *parser) parseName(construct string, pos Position, comma bool) (string, error) {
	raw, stop := p.scanTo(",)")

	switch {
	case stop == 0:
		return "", p.errorf(construct, ReasonUnterminated, pos)

	case comma && stop == ')':
		return "", p.errorf(construct, ReasonMissingComma, pos)

	case !comma && stop == ',':
		// Names are opaque; a comma is part of an exists name.
		more, end := p.scanTo(")")
		if end == 0 {
			return "", p.errorf(construct, ReasonUnterminated, pos)
		}

		raw += more
	}

	p.advance() // skip ',' or ')'

	name := strings.TrimSpace(raw)
	if name == "" {
		return "", p.errorf(construct, ReasonEmptyName, pos)
	}

	return name, nil
}

// parseOperand parses the literal of match through the closing ')'.
func (p *parser) parseOperand(construct string, pos Position) (Operand, error) {
	p.skipSpace()

	if q := p.peekByte(); q == '"' || q == '\'' {
		text, ok := p.parseQuoted(q)
		if !ok {
			return Operand{}, p.errorf(construct, ReasonUnterminated, pos)
		}

		p.skipSpace()

		if p.eof() {
			return Operand{}, p.errorf(construct, ReasonUnterminated, pos)
		}

		if !p.expect(')') {
			return Operand{}, p.errorf(construct, ReasonTrailingText, pos)
		}

		return Operand{Kind: OperandQuoted, Text: text}, nil
	}

	raw, stop := p.scanTo(")")
	if stop == 0 {
		return Operand{}, p.errorf(construct, ReasonUnterminated, pos)
	}

	p.advance() // skip ')'

	token := strings.TrimSpace(raw)
	if isDigits(token) {
		return Operand{Kind: OperandInteger, Text: token}, nil
	}

	return Operand{Kind: OperandBare, Text: token}, nil
}

// parseQuoted parses a string enclosed in quote. A backslash takes the next
// byte literally.
func (p *parser) parseQuoted(quote byte) (string, bool) {
	p.advance() // skip opening quote

	var sb strings.Builder

	for !p.eof() {
		ch := p.peekByte()

		if ch == '\\' {
			p.advance() // skip backslash

			if p.eof() {
				break
			}
		} else if ch == quote {
			p.advance() // skip closing quote

			return sb.String(), true
		}

		sb.WriteString(p.next())
	}

	return "", false
}

func (p *parser) errorf(construct, reason string, pos Position) *SyntaxError {
	return &SyntaxError{
		Construct: construct,
		Reason:    reason,
		Pos:       pos,
		Source:    p.input,
	}
}

// Helper methods

// scanTo advances to the first byte in stops and returns the text skipped
// and that byte, which is not consumed. It returns stop 0 at end of input.
func (p *parser) scanTo(stops string) (text string, stop byte) {
	start := p.pos

	for !p.eof() {
		if ch := p.peekByte(); strings.IndexByte(stops, ch) >= 0 {
			return p.input[start:p.pos], ch
		}

		p.advance()
	}

	return p.input[start:p.pos], 0
}

// atCall reports whether a call construct begins here. Calls must start at a
// word boundary, so "around(" is text.
func (p *parser) atCall(prefix string) bool {
	if !p.hasPrefix(prefix) {
		return false
	}

	return p.pos == 0 || !isWordByte(p.input[p.pos-1])
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *parser) peekByte() byte {
	if p.eof() {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

// next consumes one rune and returns its bytes as written, valid UTF-8 or
// not.
func (p *parser) next() string {
	start := p.pos
	p.advance()

	return p.input[start:p.pos]
}

// skip advances over n bytes of ASCII delimiter text.
func (p *parser) skip(n int) {
	for range n {
		p.advance()
	}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peekByte() {
		case ' ', '\t', '\n', '\r':
			p.advance()

		default:
			return
		}
	}
}

func (p *parser) expect(ch byte) bool {
	if p.peekByte() == ch && !p.eof() {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// Character classification

func isWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
