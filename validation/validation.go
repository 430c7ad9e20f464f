package validation

import (
	"strconv"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// ParseCurrency parses a user-supplied amount and rejects non-numeric or
// negative input. Form fields arrive as strings; a bad value must become a
// violation here rather than a garbage amount downstream.
func ParseCurrency(field, raw string, v Violations) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		v[field] = "not_a_number"
		return 0
	}
	if f < 0 {
		v[field] = "must_not_be_negative"
		return 0
	}
	return f
}

// ParseCount parses a user-supplied whole quantity (stock levels, minimums).
func ParseCount(field, raw string, v Violations) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		v[field] = "not_a_number"
		return 0
	}
	if n < 0 {
		v[field] = "must_not_be_negative"
		return 0
	}
	return n
}
