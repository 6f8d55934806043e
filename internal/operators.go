package internal

import (
	"fmt"
	"math"
	"strings"
)

// binaryOperation applies a binary operator to two evaluated operands
type binaryOperation func(op *token, left, right interface{}) (interface{}, error)

var binaryOperations = map[tokenType]binaryOperation{
	tkPlus:         add,
	tkMinus:        arithmetic,
	tkStar:         arithmetic,
	tkSlash:        arithmetic,
	tkPercent:      arithmetic,
	tkGreater:      compare,
	tkGreaterEqual: compare,
	tkLess:         compare,
	tkLessEqual:    compare,
	tkEqualEqual: func(op *token, left, right interface{}) (interface{}, error) {
		return isEqual(left, right), nil
	},
	tkNotEqual: func(op *token, left, right interface{}) (interface{}, error) {
		return !isEqual(left, right), nil
	},
	tkAmpersand: func(op *token, left, right interface{}) (interface{}, error) {
		return stringify(left) + stringify(right), nil
	},
	tkDollar: func(op *token, left, right interface{}) (interface{}, error) {
		return strings.TrimRight(stringify(left), whitespace) + "\n" + strings.TrimLeft(stringify(right), whitespace), nil
	},
	tkEscape: func(op *token, left, right interface{}) (interface{}, error) {
		payload, _ := op.literal.(string)
		return stringify(left) + payload + stringify(right), nil
	},
}

const whitespace = " \t\r\n"

func operationError(op *token, err error) error {
	return &runtimeError{token: op, err: err}
}

// numbers reports whether both operands are numeric and whether either is a float
func numbers(left, right interface{}) (ok bool, isFloat bool) {
	switch left.(type) {
	case int64:
	case float64:
		isFloat = true
	default:
		return false, false
	}
	switch right.(type) {
	case int64:
	case float64:
		isFloat = true
	default:
		return false, false
	}
	return true, isFloat
}

func toFloat(v interface{}) float64 {
	if i, ok := v.(int64); ok {
		return float64(i)
	}
	return v.(float64)
}

func add(op *token, left, right interface{}) (interface{}, error) {
	if ok, _ := numbers(left, right); ok {
		return arithmetic(op, left, right)
	}
	switch l := left.(type) {
	case string:
		if r, ok := right.(string); ok {
			return l + r, nil
		}
	case rune:
		if r, ok := right.(rune); ok {
			return l + r, nil
		}
	}
	return nil, operationError(op, errInvalidPlus)
}

func arithmetic(op *token, left, right interface{}) (interface{}, error) {
	ok, isFloat := numbers(left, right)
	if !ok {
		return nil, operationError(op, errOnlyNumbers)
	}

	if isFloat {
		l, r := toFloat(left), toFloat(right)
		switch op.token {
		case tkPlus:
			return l + r, nil
		case tkMinus:
			return l - r, nil
		case tkStar:
			return l * r, nil
		case tkSlash:
			if r == 0 {
				return nil, operationError(op, errDivisionByZero)
			}
			return l / r, nil
		case tkPercent:
			if r == 0 {
				return nil, operationError(op, errDivisionByZero)
			}
			return math.Mod(l, r), nil
		}
		return nil, operationError(op, fmt.Errorf("%w '%s'.", errUndefinedOp, op.lexeme))
	}

	l, r := left.(int64), right.(int64)
	switch op.token {
	case tkPlus:
		return l + r, nil
	case tkMinus:
		return l - r, nil
	case tkStar:
		return l * r, nil
	case tkSlash:
		if r == 0 {
			return nil, operationError(op, errDivisionByZero)
		}
		return l / r, nil
	case tkPercent:
		if r == 0 {
			return nil, operationError(op, errDivisionByZero)
		}
		return l % r, nil
	}
	return nil, operationError(op, fmt.Errorf("%w '%s'.", errUndefinedOp, op.lexeme))
}

func compare(op *token, left, right interface{}) (interface{}, error) {
	ok, isFloat := numbers(left, right)
	if !ok {
		return nil, operationError(op, errOnlyNumbers)
	}

	var cmp int
	if isFloat {
		l, r := toFloat(left), toFloat(right)
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	} else {
		l, r := left.(int64), right.(int64)
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	}

	switch op.token {
	case tkGreater:
		return cmp > 0, nil
	case tkGreaterEqual:
		return cmp >= 0, nil
	case tkLess:
		return cmp < 0, nil
	default:
		return cmp <= 0, nil
	}
}

func isEqual(left, right interface{}) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if ok, isFloat := numbers(left, right); ok && isFloat {
		return toFloat(left) == toFloat(right)
	}
	return left == right
}
