package calc

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12.3400", "12.34"},
		{"5.", "5"},
		{"5.0", "5"},
		{"100", "100"},
		{"100.00", "100"},
		{"0.000", "0"},
		{".", "0"},
		{"", "0"},
		{"-0.50", "-0.5"},
		{"1.50e+10", "1.5e+10"},
		{"1e+20", "1e+20"},
		{"NaN", "NaN"},
	}

	for _, test := range tests {
		if result := Normalize(test.input); result != test.expected {
			t.Errorf("Normalize(%q) = %q, want %q", test.input, result, test.expected)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{5.0, "5"},
		{12.34, "12.34"},
		{-3, "-3"},
		{math.Copysign(0, -1), "0"},
		{1.0 / 3, "0.333333333333333"},
		{0.1 + 0.2, "0.3"},
		{1e20, "1e+20"},
		{1.2e10, "12000000000"},
		{123456789012345678, "1.23456789012346e+17"},
		{0.00001, "1e-05"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}

	for _, test := range tests {
		if result := FormatNumber(test.input); result != test.expected {
			t.Errorf("FormatNumber(%v) = %q, want %q", test.input, result, test.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		value float64
		ok    bool
	}{
		{"12", 12, true},
		{"12.", 12, true},
		{"-0.5", -0.5, true},
		{".", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}

	for _, test := range tests {
		value, ok := parseNumber(test.input)
		if ok != test.ok || value != test.value {
			t.Errorf("parseNumber(%q) = (%v, %v), want (%v, %v)", test.input, value, ok, test.value, test.ok)
		}
	}

	if v, ok := parseNumber("NaN"); !ok || !math.IsNaN(v) {
		t.Errorf("parseNumber(\"NaN\") = (%v, %v), want NaN", v, ok)
	}
}

func TestOpApply(t *testing.T) {
	tests := []struct {
		op       Op
		a, b     float64
		expected float64
	}{
		{OpAdd, 3, 4, 7},
		{OpSub, 3, 4, -1},
		{OpMul, 3, 4, 12},
		{OpDiv, 3, 4, 0.75},
	}

	for _, test := range tests {
		result, ok := test.op.Apply(test.a, test.b)
		if !ok || result != test.expected {
			t.Errorf("%v.Apply(%v, %v) = (%v, %v), want %v", test.op, test.a, test.b, result, ok, test.expected)
		}
	}

	if result, ok := OpDiv.Apply(5, 0); !ok || !math.IsNaN(result) {
		t.Errorf("division by zero = (%v, %v), want NaN", result, ok)
	}
	if _, ok := OpNone.Apply(1, 2); ok {
		t.Error("OpNone should not apply")
	}
	if _, ok := Op(9).Apply(1, 2); ok {
		t.Error("unknown operator should not apply")
	}
}

func TestParseOp(t *testing.T) {
	tests := []struct {
		symbol   string
		expected Op
		ok       bool
	}{
		{"+", OpAdd, true},
		{"-", OpSub, true},
		{"*", OpMul, true},
		{"×", OpMul, true},
		{"÷", OpDiv, true},
		{"/", OpDiv, true},
		{"%", OpNone, false},
		{"", OpNone, false},
	}

	for _, test := range tests {
		op, ok := ParseOp(test.symbol)
		if op != test.expected || ok != test.ok {
			t.Errorf("ParseOp(%q) = (%v, %v), want (%v, %v)", test.symbol, op, ok, test.expected, test.ok)
		}
	}

	for _, op := range []Op{OpAdd, OpSub, OpMul, OpDiv} {
		if back, ok := ParseOp(op.Symbol()); !ok || back != op {
			t.Errorf("ParseOp(%q) = %v, want %v", op.Symbol(), back, op)
		}
	}
}
