package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Runtime values are plain Go values, one of:
//
//	int64    NUMERO
//	float64  TIPIK
//	rune     LETRA
//	bool     TINUOD
//	string   text, only produced by literals and text operators
//	nil      absent
//
// dataType is the declared type of a binding.
type dataType int

const (
	typeInteger dataType = iota
	typeFloat
	typeChar
	typeBool
)

var dataTypeNames = [...]string{
	typeInteger: "NUMERO",
	typeFloat:   "TIPIK",
	typeChar:    "LETRA",
	typeBool:    "TINUOD",
}

func (d dataType) String() string {
	return dataTypeNames[d]
}

var declarationTypes = map[tokenType]dataType{
	tkIntType:   typeInteger,
	tkFloatType: typeFloat,
	tkCharType:  typeChar,
	tkBoolType:  typeBool,
}

const (
	trueSpelling  = "OO"
	falseSpelling = "DILI"
	nullSpelling  = "nil"
)

func kindName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "NULL"
	case int64:
		return typeInteger.String()
	case float64:
		return typeFloat.String()
	case rune:
		return typeChar.String()
	case bool:
		return typeBool.String()
	case string:
		return "PULONG"
	}
	return fmt.Sprintf("%T", v)
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return nullSpelling
	case bool:
		if value {
			return trueSpelling
		}
		return falseSpelling
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return formatFloat(value)
	case rune:
		return string(value)
	case string:
		return value
	}
	return fmt.Sprintf("%v", v)
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func truthLiteral(s string) (bool, bool) {
	switch s {
	case trueSpelling:
		return true, true
	case falseSpelling:
		return false, true
	}
	return false, false
}

// exactInt narrows a float without a fractional part to an integer
func exactInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// coerce converts v to the declared type of a binding
func coerce(declared dataType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch declared {
	case typeInteger:
		switch value := v.(type) {
		case int64:
			return value, nil
		case float64:
			if i, ok := exactInt(value); ok {
				return i, nil
			}
		}
	case typeFloat:
		switch value := v.(type) {
		case float64:
			return value, nil
		case int64:
			return float64(value), nil
		}
	case typeChar:
		if value, ok := v.(rune); ok {
			return value, nil
		}
	case typeBool:
		switch value := v.(type) {
		case bool:
			return value, nil
		case string:
			if b, ok := truthLiteral(value); ok {
				return b, nil
			}
		}
	}
	return nil, mismatch(declared, v)
}

// parseInput converts a line of user input to the declared type of a binding
func parseInput(declared dataType, text string) (interface{}, error) {
	switch declared {
	case typeInteger:
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			if i, ok := exactInt(f); ok {
				return i, nil
			}
		}
	case typeFloat:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f, nil
		}
	case typeChar:
		if r, size := utf8.DecodeRuneInString(text); size > 0 && size == len(text) && r != utf8.RuneError {
			return r, nil
		}
	case typeBool:
		if b, ok := truthLiteral(strings.Trim(text, `"`)); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot read %q as %s", errTypeMismatch, text, declared)
}

func mismatch(declared dataType, v interface{}) error {
	return fmt.Errorf("%w: expected %s but got %s %s", errTypeMismatch, declared, kindName(v), stringify(v))
}
