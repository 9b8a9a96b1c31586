package lang

import (
	"strings"
)

// Evaluate renders nodes against l. It never fails: missing fields and
// values of the wrong type render as empty text or select the false branch.
// A nil l behaves as a lookup in which every field is absent.
func Evaluate(nodes Nodes, l Lookup) string {
	if l == nil {
		l = LookupFunc(nil)
	}

	var sb strings.Builder

	evaluate(&sb, nodes, l)

	return sb.String()
}

func evaluate(sb *strings.Builder, nodes Nodes, l Lookup) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Literal:
			sb.WriteString(n.Text)

		case *Substitution:
			sb.WriteString(l.Lookup(n.Name).String())

		case *Round:
			sb.WriteString(RoundValue(l.Lookup(n.Name), n.Precision))

		case *Conditional:
			if Test(n.Predicate, l) {
				evaluate(sb, n.Then, l)
			} else {
				evaluate(sb, n.Else, l)
			}
		}
	}
}

// Test evaluates a predicate against l.
//
// match is true when the field's value equals the operand under
// [Value.Equal]. exists is true unless the field is absent, null or the
// empty string; zero and false exist.
func Test(pred Predicate, l Lookup) bool {
	switch pred := pred.(type) {
	case *Match:
		return l.Lookup(pred.Name).Equal(pred.Operand.Value())

	case *Exists:
		v := l.Lookup(pred.Name)

		return !v.IsMissing() && !(v.Kind() == KindString && v.String() == "")

	default:
		return false
	}
}

// RoundValue formats v rounded half away from zero to exactly precision
// fractional digits. Precision 0 yields an integer without a decimal point.
// Non-numeric values yield "".
func RoundValue(v Value, precision int) string {
	s, ok := v.decimal()
	if !ok {
		return ""
	}

	return roundDecimal(s, max(precision, 0))
}

// roundDecimal rounds the plain decimal text s (no exponent) to n fractional
// digits. Working on digits rather than floats keeps halves exact: 1.005
// rounds to 1.01.
func roundDecimal(s string, n int) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	var up bool

	if len(frac) > n {
		up = frac[n] >= '5'
		frac = frac[:n]
	} else {
		frac += strings.Repeat("0", n-len(frac))
	}

	digits := []byte(whole + frac)

	if up {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] < '9' {
				digits[i]++

				break
			}

			digits[i] = '0'
		}

		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}

	if strings.Trim(string(digits), "0") == "" {
		neg = false
	}

	var sb strings.Builder

	if neg {
		sb.WriteByte('-')
	}

	point := len(digits) - n

	sb.Write(digits[:point])

	if n > 0 {
		sb.WriteByte('.')
		sb.Write(digits[point:])
	}

	return sb.String()
}
