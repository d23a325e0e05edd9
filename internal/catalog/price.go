package catalog

import (
	"strconv"
	"strings"
)

// Price is the draft value of the price input: empty while the input is blank,
// numeric otherwise.
type Price struct {
	value float64
	set   bool
}

// EmptyPrice is the blank input.
func EmptyPrice() Price {
	return Price{}
}

// NumericPrice wraps a parsed value.
func NumericPrice(v float64) Price {
	return Price{value: v, set: true}
}

// IsEmpty reports whether the input is blank.
func (p Price) IsEmpty() bool {
	return !p.set
}

// Value returns the numeric value, false when empty.
func (p Price) Value() (float64, bool) {
	return p.value, p.set
}

// Equal treats two empty prices as equal and never equates empty with zero.
func (p Price) Equal(other Price) bool {
	if p.set != other.set {
		return false
	}
	return !p.set || p.value == other.value
}

// String renders the value for an input field.
func (p Price) String() string {
	if !p.set {
		return ""
	}
	return strconv.FormatFloat(p.value, 'f', -1, 64)
}

// ParsePrice converts free text typed into the price input. Blank text stays
// empty; otherwise the longest leading decimal number is used and text with no
// numeric prefix becomes zero.
func ParsePrice(text string) Price {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return EmptyPrice()
	}
	prefix := numericPrefix(trimmed)
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return NumericPrice(0)
	}
	return NumericPrice(v)
}

// numericPrefix returns the leading [sign]digits[.digits][e[sign]digits] run.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
