package directive

import (
	"strconv"
	"strings"
)

type ValueType int

const (
	ValueString ValueType = iota
	ValueInt
	ValueFloat
)

// Value is a directive argument after numeric coercion.
type Value struct {
	Raw   string
	Type  ValueType
	Int   int64
	Float float64
}

// ParseValue trims raw and coerces it: a dot means float, all digits means
// int, anything else (including numbers that fail to parse) stays a string.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	v := Value{Raw: s, Type: ValueString}

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			v.Type = ValueFloat
			v.Float = f
		}
		return v
	}

	if isDigits(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			v.Type = ValueInt
			v.Int = n
		}
	}
	return v
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Number returns the numeric interpretation, if any.
func (v Value) Number() (float64, bool) {
	switch v.Type {
	case ValueInt:
		return float64(v.Int), true
	case ValueFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// String renders the coerced value: integers without a fraction, floats in
// their shortest form with at least one decimal, strings as trimmed text.
func (v Value) String() string {
	switch v.Type {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	default:
		return v.Raw
	}
}
