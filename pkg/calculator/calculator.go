// Package calculator implements the keypad input grammar and the arithmetic
// evaluator behind the converter's amount field.
//
// The grammar is deliberately small: decimal numbers joined by the four
// keypad operators + - × ÷. Evaluation is strictly left to right, matching
// what a user expects from a pocket-calculator keypad (2+3×4 = 20, not 14).
// Every function here is total: malformed input degrades to a no-op edit or
// a zero result, never an error.
package calculator

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxInputLen caps the raw input string at 20 characters. Digits and
// operators typed past the cap are dropped silently.
const MaxInputLen = 20

// Keypad operator glyphs.
const (
	OpAdd = '+'
	OpSub = '-'
	OpMul = '×'
	OpDiv = '÷'
)

// IsOperator reports whether r is one of the four keypad operators.
func IsOperator(r rune) bool {
	return r == OpAdd || r == OpSub || r == OpMul || r == OpDiv
}

// AppendDigit appends a digit or decimal point to input, enforcing the
// keypad grammar:
//
//   - at most one decimal point per operand segment,
//   - a lone leading "0" in a segment is replaced by the next digit
//     (so 0 then 7 yields "7", while 0 . 5 yields "0.5"),
//   - the total length never exceeds MaxInputLen.
//
// Rejected keystrokes return input unchanged.
func AppendDigit(input string, d rune) string {
	if (d < '0' || d > '9') && d != '.' {
		return input
	}
	if utf8.RuneCountInString(input) >= MaxInputLen {
		return input
	}
	seg := currentSegment(input)
	if d == '.' {
		if strings.ContainsRune(seg, '.') {
			return input
		}
		return input + "."
	}
	if seg == "0" {
		return input[:len(input)-1] + string(d)
	}
	return input + string(d)
}

// AppendOperator appends one of the four operators to a non-empty input.
// A trailing operator is replaced rather than stacked, so there are never
// two operators in a row.
func AppendOperator(input string, op rune) string {
	if !IsOperator(op) || input == "" {
		return input
	}
	if last, size := lastRune(input); IsOperator(last) {
		return input[:len(input)-size] + string(op)
	}
	if utf8.RuneCountInString(input) >= MaxInputLen {
		return input
	}
	return input + string(op)
}

// Backspace removes the last character of input. No-op on empty input.
func Backspace(input string) string {
	if input == "" {
		return ""
	}
	_, size := lastRune(input)
	return input[:len(input)-size]
}

// Evaluate computes the numeric value of a keypad input string.
//
// A single dangling trailing operator is stripped first, so "12.5+" is
// treated as "12.5". Anything outside digits, decimal points, and the four
// operators makes the whole expression evaluate to 0, as does any parse or
// arithmetic failure (division by zero included). Amounts are never
// negative in this domain, so negative results clamp to 0.
func Evaluate(input string) float64 {
	if input == "" {
		return 0
	}
	if last, size := lastRune(input); IsOperator(last) {
		input = input[:len(input)-size]
	}
	if input == "" {
		return 0
	}

	var (
		operands []float64
		ops      []rune
		buf      strings.Builder
	)
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9' || r == '.':
			buf.WriteRune(r)
		case IsOperator(r):
			n, err := strconv.ParseFloat(buf.String(), 64)
			if err != nil {
				return 0
			}
			operands = append(operands, n)
			ops = append(ops, r)
			buf.Reset()
		default:
			return 0
		}
	}
	n, err := strconv.ParseFloat(buf.String(), 64)
	if err != nil {
		return 0
	}
	operands = append(operands, n)

	result := operands[0]
	for i, op := range ops {
		rhs := operands[i+1]
		switch op {
		case OpAdd:
			result += rhs
		case OpSub:
			result -= rhs
		case OpMul:
			result *= rhs
		case OpDiv:
			if rhs == 0 {
				return 0
			}
			result /= rhs
		}
	}
	if math.IsNaN(result) || math.IsInf(result, 0) || result < 0 {
		return 0
	}
	return result
}

// currentSegment returns the operand substring after the last operator.
func currentSegment(input string) string {
	last := -1
	for i, r := range input {
		if IsOperator(r) {
			last = i + utf8.RuneLen(r)
		}
	}
	if last < 0 {
		return input
	}
	return input[last:]
}

func lastRune(s string) (rune, int) {
	return utf8.DecodeLastRuneInString(s)
}
