package lang

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind indicates the type of a [Value].
type Kind uint8

const (
	// KindAbsent marks a field the record does not have.
	KindAbsent Kind = iota

	// KindNull marks a field present with no value.
	KindNull

	// KindString is a string value.
	KindString

	// KindNumber is a numeric value.
	KindNumber

	// KindBool is a boolean value.
	KindBool
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "Absent"

	case KindNull:
		return "Null"

	case KindString:
		return "String"

	case KindNumber:
		return "Number"

	case KindBool:
		return "Bool"

	default:
		return "Unknown"
	}
}

// Value is a field value resolved from a record.
// The zero Value is absent.
type Value struct {
	kind Kind
	str  string
	num  float64
	i    int64
	exac bool // num came from an integer and i holds it exactly
	b    bool
}

// Absent returns the value of a missing field.
func Absent() Value { return Value{} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Float returns a numeric value.
func Float(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric value holding an exact integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), i: i, exac: true}
}

// ValueOf converts host data to a Value.
// Nil is null; strings, booleans, every integer and float kind,
// [json.Number] and [fmt.Stringer] convert naturally. Anything else
// (maps, slices, structs) is absent.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null()

	case Value:
		return v

	case string:
		return String(v)

	case bool:
		return Bool(v)

	case int:
		return Int(int64(v))

	case int8:
		return Int(int64(v))

	case int16:
		return Int(int64(v))

	case int32:
		return Int(int64(v))

	case int64:
		return Int(v)

	case uint:
		return uintValue(uint64(v))

	case uint8:
		return Int(int64(v))

	case uint16:
		return Int(int64(v))

	case uint32:
		return Int(int64(v))

	case uint64:
		return uintValue(v)

	case float32:
		return Float(float64(v))

	case float64:
		return Float(v)

	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i)
		}

		if f, err := v.Float64(); err == nil {
			return Float(f)
		}

		return String(v.String())

	case fmt.Stringer:
		return String(v.String())

	default:
		return Absent()
	}
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}

	return Int(int64(u))
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is absent or null.
func (v Value) IsMissing() bool {
	return v.kind == KindAbsent || v.kind == KindNull
}

// String returns the natural string form of v: strings verbatim, numbers
// without added precision or exponent, booleans as "true" or "false", and
// absent or null as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str

	case KindNumber:
		if v.exac {
			return strconv.FormatInt(v.i, 10)
		}

		return strconv.FormatFloat(v.num, 'f', -1, 64)

	case KindBool:
		return strconv.FormatBool(v.b)

	default:
		return ""
	}
}

// Number returns v as a finite float. Numbers convert directly; strings
// convert only when the whole (space-trimmed) string parses as a finite
// float. All other kinds report false.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0, false
		}

		return v.num, true

	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}

		return f, true

	default:
		return 0, false
	}
}

// decimal returns the shortest decimal text that reads back as the numeric
// value of v, or false if v is not numeric.
func (v Value) decimal() (string, bool) {
	f, ok := v.Number()
	if !ok {
		return "", false
	}

	if v.kind == KindNumber && v.exac {
		return strconv.FormatInt(v.i, 10), true
	}

	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// Equal reports whether v matches other under typed equality: when both
// reduce to numbers they compare numerically, otherwise their natural string
// forms compare. Absent and null values equal nothing.
func (v Value) Equal(other Value) bool {
	if v.IsMissing() || other.IsMissing() {
		return false
	}

	a, aok := v.Number()
	b, bok := other.Number()

	if aok && bok {
		if v.exac && other.exac {
			return v.i == other.i
		}

		return a == b
	}

	return v.String() == other.String()
}

// GoValue returns v as native Go data (nil, string, int64, float64 or bool).
func (v Value) GoValue() any {
	switch v.kind {
	case KindString:
		return v.str

	case KindNumber:
		if v.exac {
			return v.i
		}

		return v.num

	case KindBool:
		return v.b

	default:
		return nil
	}
}
