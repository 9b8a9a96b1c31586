package lang

import (
	"context"
	"math"
	"testing"
)

// record is the lookup used throughout the evaluation tests.
var record = Map{
	"one":   1,
	"two":   "two",
	"three": "",
	"four":  nil,
	"float": 123.123456,
}

func TestInterpret_Record(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"${one}", "1"},
		{"${one} and ${two}", "1 and two"},
		{"match(one,1)?A:B", "A"},
		{"match(one,2)?A:B", "B"},
		{`match(two,"two")?A:B`, "A"},
		{"exists(one)?A:B", "A"},
		{"exists(three)?A:B", "B"},
		{"exists(four)?A:B", "B"},
		{"round(float,0)", "123"},
		{"round(float,1)", "123.1"},
		{"round(float,2)", "123.12"},
		{"***round(float,2)***", "***123.12***"},
		{"round(two,0)", ""},
		{
			`match(one,1)?match(two,"two")?${one}=1 and ${two}=two:${two}!=two:${one}!=1`,
			"1=1 and two=two",
		},
		{`\${one}`, "${one}"},
		{`\${missing}`, "${missing}"},
		{"${missing}", ""},
		{"${four}", ""},
		{"${float}", "123.123456"},
		{"[${three}]", "[]"},
		{"exists(missing)?A:B", "B"},
		{"exists(two)?A", "A"},
		{"exists(missing)?A", ""},
		{"match(missing,1)?A:B", "B"},
		{`match(four,"")?A:B`, "B"},
		{`match(three,"")?A:B`, "A"},
		{`match(one,"1")?A:B`, "A"},
		{"match(two,two)?A:B", "A"},
		{"match(float,123.123456)?A:B", "A"},
		{"round(one,2)", "1.00"},
		{"round(three,2)", ""},
		{"round(missing,2)", ""},
		{"Ratio: ${one}:${two}", "Ratio: 1:two"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Interpret(context.Background(), tt.input, record)
			if err != nil {
				t.Fatalf("Interpret(%q) error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("Interpret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Chain(t *testing.T) {
	tmpl := MustParse("match(g,3)?high:match(g,2)?medium:low")

	for g, want := range map[any]string{
		3:   "high",
		2:   "medium",
		1:   "low",
		"2": "medium",
		nil: "low",
	} {
		if got := tmpl.Render(context.Background(), Map{"g": g}); got != want {
			t.Errorf("g=%v: got %q, want %q", g, got, want)
		}
	}
}

func TestEvaluate_ColonEndsBranch(t *testing.T) {
	// A literal colon inside a true branch ends it; there is no escape.
	tmpl := MustParse("exists(a)?Ratio: 3:1")

	if got := tmpl.Render(context.Background(), Map{"a": "x"}); got != "Ratio" {
		t.Errorf("true branch = %q, want %q", got, "Ratio")
	}

	if got := tmpl.Render(context.Background(), Map{}); got != " 3:1" {
		t.Errorf("false branch = %q, want %q", got, " 3:1")
	}
}

func TestEvaluate_NilLookup(t *testing.T) {
	got := Evaluate(MustParse("[${a}]exists(a)?y:n").Nodes(), nil)

	if got != "[]n" {
		t.Errorf("got %q, want %q", got, "[]n")
	}
}

func TestEvaluate_LookupFunc(t *testing.T) {
	var calls []string

	l := LookupFunc(func(name string) Value {
		calls = append(calls, name)

		return String(name + "!")
	})

	got := Evaluate(MustParse("${a} exists(b)?${c}:${d}").Nodes(), l)

	if got != "a! c!" {
		t.Errorf("got %q", got)
	}

	// The untaken branch is never looked up.
	if len(calls) != 3 || calls[2] != "c" {
		t.Errorf("lookups = %v, want [a b c]", calls)
	}
}

func TestTest_Exists(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{0, true},
		{false, true},
		{"0", true},
		{" ", true},
		{"", false},
		{nil, false},
	}

	for _, tt := range tests {
		got := Test(&Exists{Name: "v"}, Map{"v": tt.value})
		if got != tt.want {
			t.Errorf("exists(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if Test(&Exists{Name: "v"}, Map{}) {
		t.Error("exists on absent field = true")
	}
}

func TestTest_Match(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand Operand
		want    bool
	}{
		{"int vs integer", 1, Operand{OperandInteger, "1"}, true},
		{"float vs integer", 1.0, Operand{OperandInteger, "1"}, true},
		{"int vs quoted number", 1, Operand{OperandQuoted, "1"}, true},
		{"numeric string vs integer", "01", Operand{OperandInteger, "1"}, true},
		{"string vs quoted", "two", Operand{OperandQuoted, "two"}, true},
		{"case sensitive", "Two", Operand{OperandQuoted, "two"}, false},
		{"bool vs bare", true, Operand{OperandBare, "true"}, true},
		{"bool vs quoted", false, Operand{OperandQuoted, "false"}, true},
		{"bool vs integer", true, Operand{OperandInteger, "1"}, false},
		{"null vs empty", nil, Operand{OperandQuoted, ""}, false},
		{"empty vs empty", "", Operand{OperandQuoted, ""}, true},
		{"big integer", int64(math.MaxInt64), Operand{OperandInteger, "9223372036854775807"}, true},
		{"off by one", int64(math.MaxInt64 - 1), Operand{OperandInteger, "9223372036854775807"}, false},
		{"map value", map[string]any{}, Operand{OperandQuoted, ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := &Match{Name: "v", Operand: tt.operand}

			if got := Test(pred, Map{"v": tt.value}); got != tt.want {
				t.Errorf("match(%#v, %v) = %v, want %v", tt.value, tt.operand, got, tt.want)
			}
		})
	}
}

func TestRoundValue(t *testing.T) {
	tests := []struct {
		value     Value
		precision int
		want      string
	}{
		{Float(123.123456), 0, "123"},
		{Float(123.123456), 3, "123.123"},
		{Float(1.005), 2, "1.01"},
		{Float(9.995), 2, "10.00"},
		{Float(2.5), 0, "3"},
		{Float(-2.5), 0, "-3"},
		{Float(-0.04), 1, "0.0"},
		{Float(0.5), 0, "1"},
		{Float(0.05), 1, "0.1"},
		{Float(1e21), 0, "1000000000000000000000"},
		{Float(1e-7), 8, "0.00000010"},
		{Int(7), 3, "7.000"},
		{Int(-7), 0, "-7"},
		{String("3.14159"), 3, "3.142"},
		{String(" 2.5 "), 1, "2.5"},
		{String("abc"), 1, ""},
		{String("1e3"), 0, "1000"},
		{Float(math.NaN()), 1, ""},
		{Float(math.Inf(1)), 1, ""},
		{Bool(true), 0, ""},
		{Null(), 0, ""},
		{Absent(), 0, ""},
	}

	for _, tt := range tests {
		if got := RoundValue(tt.value, tt.precision); got != tt.want {
			t.Errorf("RoundValue(%v, %d) = %q, want %q",
				tt.value.GoValue(), tt.precision, got, tt.want)
		}
	}
}

func TestRender_Concurrent(t *testing.T) {
	tmpl := MustParse(`match(one,1)?match(two,"two")?${one}=1 and ${two}=two:${two}!=two:${one}!=1`)

	done := make(chan string, 32)

	for range cap(done) {
		go func() { done <- tmpl.Render(context.Background(), record) }()
	}

	for range cap(done) {
		if got := <-done; got != "1=1 and two=two" {
			t.Errorf("concurrent render = %q", got)
		}
	}
}
