package ast

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind discriminates the literal variants.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueString
	ValueInteger
	ValueFloat
	ValueBoolean
)

var valueKindNames = [...]string{
	ValueNull:    "null",
	ValueString:  "string",
	ValueInteger: "integer",
	ValueFloat:   "float",
	ValueBoolean: "boolean",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

// Value is a scalar literal. Only the field matching Kind is meaningful.
// The zero Value is null.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

func String(s string) Value { return Value{Kind: ValueString, Str: s} }

func Int(i int64) Value { return Value{Kind: ValueInteger, Int: i} }

func Float(f float64) Value { return Value{Kind: ValueFloat, Float: f} }

func Bool(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

func Null() Value { return Value{} }

func (v Value) IsNull() bool { return v.Kind == ValueNull }

// String returns the display text: strings unquoted, numbers in shortest form.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueInteger:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return "null"
	}
}

// Literal returns source text that lexes back to an equal value.
// Floats always carry a fractional part, and the exponent form always
// has digits on both sides of '.', since "1e5" or "1." are not floats
// in the language.
func (v Value) Literal() string {
	switch v.Kind {
	case ValueString:
		return `"` + v.Str + `"`
	case ValueFloat:
		return floatLiteral(v.Float)
	default:
		return v.String()
	}
}

func floatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	mant, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	if exp == "" {
		return mant
	}
	return mant + "e" + exp
}

// Interface converts the value into plain Go data for generic encoders.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueInteger:
		return v.Int
	case ValueFloat:
		return v.Float
	case ValueBoolean:
		return v.Bool
	default:
		return nil
	}
}

// Equal compares kind and payload. Floats compare by bits so NaN equals NaN.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueString:
		return v.Str == o.Str
	case ValueInteger:
		return v.Int == o.Int
	case ValueFloat:
		return math.Float64bits(v.Float) == math.Float64bits(o.Float)
	case ValueBoolean:
		return v.Bool == o.Bool
	default:
		return true
	}
}
