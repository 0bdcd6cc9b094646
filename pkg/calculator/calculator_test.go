package calculator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "empty input", input: "", expected: 0},
		{name: "single number", input: "100", expected: 100},
		{name: "decimal number", input: "12.5", expected: 12.5},
		{name: "addition", input: "1+2", expected: 3},
		{name: "subtraction", input: "9-4", expected: 5},
		{name: "multiplication", input: "6×7", expected: 42},
		{name: "division", input: "9÷2", expected: 4.5},
		{name: "left to right, no precedence", input: "2+3×4", expected: 20},
		{name: "longer chain", input: "10-4÷2×5", expected: 15},
		{name: "dangling operator stripped", input: "12.5+", expected: 12.5},
		{name: "dangling multiply stripped", input: "7×", expected: 7},
		{name: "lone operator", input: "+", expected: 0},
		{name: "lone decimal point", input: ".", expected: 0},
		{name: "division by zero", input: "5÷0", expected: 0},
		{name: "negative result clamps to zero", input: "3-10", expected: 0},
		{name: "disallowed characters", input: "1+2e9", expected: 0},
		{name: "injected letters", input: "abc", expected: 0},
		{name: "double operator", input: "1++2", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Evaluate(tt.input), 1e-9)
		})
	}
}

func TestEvaluateNeverNegative(t *testing.T) {
	inputs := []string{"0-1", "1-2×3", "0.1-0.2", "5-5-5"}
	for _, in := range inputs {
		assert.GreaterOrEqual(t, Evaluate(in), 0.0, "input %q", in)
	}
}

func TestAppendDigit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		digit    rune
		expected string
	}{
		{name: "digit on empty", input: "", digit: '5', expected: "5"},
		{name: "point on empty", input: "", digit: '.', expected: "."},
		{name: "leading zero replaced by digit", input: "0", digit: '5', expected: "5"},
		{name: "leading zero kept before point", input: "0", digit: '.', expected: "0."},
		{name: "digit after zero-point", input: "0.", digit: '5', expected: "0.5"},
		{name: "second point in segment rejected", input: "1.2", digit: '.', expected: "1.2"},
		{name: "point allowed in new segment", input: "1.2+3", digit: '.', expected: "1.2+3."},
		{name: "zero in new segment replaced", input: "1+0", digit: '7', expected: "1+7"},
		{name: "non-digit rejected", input: "12", digit: 'x', expected: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AppendDigit(tt.input, tt.digit))
		})
	}
}

func TestAppendDigitLengthCap(t *testing.T) {
	input := strings.Repeat("9", MaxInputLen)
	assert.Equal(t, input, AppendDigit(input, '1'))

	// Multi-byte operators count as one character.
	input = strings.Repeat("1×2×", 5) // 20 runes
	assert.Equal(t, input, AppendDigit(input, '3'))
}

func TestAppendOperator(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		op       rune
		expected string
	}{
		{name: "operator on empty rejected", input: "", op: '+', expected: ""},
		{name: "append after number", input: "12", op: '+', expected: "12+"},
		{name: "trailing operator replaced", input: "12+", op: '×', expected: "12×"},
		{name: "multibyte trailing operator replaced", input: "12×", op: '-', expected: "12-"},
		{name: "unknown operator rejected", input: "12", op: '/', expected: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AppendOperator(tt.input, tt.op))
		})
	}
}

func TestBackspace(t *testing.T) {
	assert.Equal(t, "", Backspace(""))
	assert.Equal(t, "12", Backspace("12+"))
	assert.Equal(t, "12", Backspace("12×"))
	assert.Equal(t, "1", Backspace("12"))
}

func TestKeystrokeSequences(t *testing.T) {
	type key struct {
		r  rune
		op bool
	}
	press := func(keys ...key) string {
		var input string
		for _, k := range keys {
			if k.op {
				input = AppendOperator(input, k.r)
			} else {
				input = AppendDigit(input, k.r)
			}
		}
		return input
	}

	// 0 then 5 replaces the leading zero.
	assert.Equal(t, "5", press(key{r: '0'}, key{r: '5'}))
	// 0 . 5 keeps the zero.
	assert.Equal(t, "0.5", press(key{r: '0'}, key{r: '.'}, key{r: '5'}))
	// 1 + × ends with the last operator pressed.
	assert.Equal(t, "1×", press(key{r: '1'}, key{r: '+', op: true}, key{r: '×', op: true}))
}
