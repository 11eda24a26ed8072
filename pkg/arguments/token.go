package arguments

import (
	"math"
	"strconv"
	"strings"
)

// Token primitives. A token is one argv element of the form -X<payload>.
// Each primitive reads the longest numeric prefix of the payload, the way
// scanf does, and reports a failed or negative read as -1.

const unsetValue = -1

// payload strips the leading "-X" from a token.
func payload(tok string) string {
	if len(tok) < 2 {
		return ""
	}
	return tok[2:]
}

// scanInt reads a decimal integer prefix of s and returns the remainder.
func scanInt(s string) (int, string, bool) {
	s = strings.TrimLeft(s, " \t")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, s, false
	}
	v, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return v, s[i:], true
}

// scanFloat reads a decimal floating point prefix of s and returns the
// remainder.
func scanFloat(s string) (float64, string, bool) {
	s = strings.TrimLeft(s, " \t")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, s, false
	}
	// The exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, s, false
	}
	return v, s[i:], true
}

func nonNegative[T int | float64](v T, ok bool) T {
	if !ok || v < 0 {
		return unsetValue
	}
	return v
}

// scanPair reads "a,b" or "a". A missing, failed or negative b takes the
// value of a; the result is ordered.
func scanPair[T int | float64](p string, scan func(string) (T, string, bool)) Range[T] {
	lo, hi := T(unsetValue), T(unsetValue)

	a, rest, ok := scan(p)
	if ok {
		lo = nonNegative(a, true)
		if strings.HasPrefix(rest, ",") {
			b, _, okB := scan(rest[1:])
			hi = nonNegative(b, okB)
		}
	}
	if hi == unsetValue {
		hi = lo
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range[T]{Min: lo, Max: hi}
}

// PosInt returns the integer payload of tok, or -1.
func PosInt(tok string) int {
	v, _, ok := scanInt(payload(tok))
	return nonNegative(v, ok)
}

// PosDouble returns the real payload of tok, or -1.
func PosDouble(tok string) float64 {
	v, _, ok := scanFloat(payload(tok))
	return nonNegative(v, ok)
}

// PosIntPair returns the ordered integer pair in tok's payload.
func PosIntPair(tok string) Range[int] {
	return scanPair(payload(tok), scanInt)
}

// PosDoublePair returns the ordered real pair in tok's payload.
func PosDoublePair(tok string) Range[float64] {
	return scanPair(payload(tok), scanFloat)
}

// Keyword returns the member of set equal to tok's payload. On a mismatch it
// returns a parse error positioned at the first payload column; the caller
// fills in the row.
func Keyword(tok string, set []string) (string, error) {
	p := payload(tok)
	for _, k := range set {
		if p == k {
			return k, nil
		}
	}

	var letter byte
	if len(tok) > 1 {
		letter = tok[1]
	}
	return "", &Error{
		Kind:     KindParse,
		Flag:     letter,
		Column:   3,
		Template: "%s: mangled command line argument under -%c, expected one of %s",
		Args:     []interface{}{letter, strings.Join(set, ", ")},
	}
}
