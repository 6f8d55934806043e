package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// flow tells an enclosing loop how a statement finished
type flow int

const (
	flowNormal flow = iota
	flowBreak
	flowContinue
)

type exec struct {
	state *interpreterState

	env *env
	out Printer
	in  LineReader
}

// interpret runs every statement and stops at the first runtime error
func (e *exec) interpret() bool {
	for _, s := range e.state.stmts {
		if _, err := e.execute(s); err != nil {
			var rtErr *runtimeError
			if !errors.As(err, &rtErr) {
				rtErr = &runtimeError{token: statementToken(s), err: err}
			}
			e.state.runtimeErr(rtErr)
			e.state.log("exec").WithError(err).Debug("execution aborted")
			return false
		}
	}
	e.state.log("exec").Debug("execution finished")
	return true
}

func (e *exec) execute(s stmt) (flow, error) {
	if e.state.logger.IsLevelEnabled(logrus.TraceLevel) {
		e.state.log("exec").WithFields(logrus.Fields{
			"stmt": fmt.Sprintf("%T", s),
			"line": statementToken(s).line,
		}).Trace("execute")
	}

	switch st := s.(type) {
	case *exprStmt:
		_, err := e.evaluate(st.expression)
		return flowNormal, err
	case *printStmt:
		return flowNormal, e.print(st)
	case *multiVarStmt:
		return flowNormal, e.declare(st)
	case *scanStmt:
		return flowNormal, e.scan(st)
	case *blockStmt:
		return e.executeBlock(st.stmts)
	case *ifStmt:
		return e.ifElse(st)
	case *whileStmt:
		return e.while(st)
	case *doWhileStmt:
		return e.doWhile(st)
	case *breakStmt:
		return flowBreak, nil
	case *continueStmt:
		return flowContinue, nil
	}
	panic(fmt.Sprintf("unknown statement %T", s))
}

func (e *exec) executeBlock(stmts []stmt) (flow, error) {
	e.env.push()
	defer e.env.pop()
	for _, s := range stmts {
		fl, err := e.execute(s)
		if err != nil || fl != flowNormal {
			return fl, err
		}
	}
	return flowNormal, nil
}

func (e *exec) print(st *printStmt) error {
	value, err := e.evaluate(st.expression)
	if err != nil {
		return err
	}
	if _, err := e.out.Println(stringify(value)); err != nil {
		return &runtimeError{token: st.keyword, err: err}
	}
	return nil
}

func (e *exec) declare(st *multiVarStmt) error {
	for i, name := range st.names {
		var value interface{}
		if init := st.initializers[i]; init != nil {
			v, err := e.evaluate(init)
			if err != nil {
				return err
			}
			value, err = coerce(st.declared, v)
			if err != nil {
				return &runtimeError{token: name, err: err}
			}
		}
		e.env.define(name.lexeme, value, st.declared)
	}
	return nil
}

func (e *exec) scan(st *scanStmt) error {
	for _, name := range st.names {
		if !e.env.existsInAnyScope(name.lexeme) {
			return undefinedVar(name)
		}
	}
	if e.in == nil {
		return &runtimeError{token: st.keyword, err: errInputRead}
	}
	line, err := e.in.ReadLine()
	if err != nil {
		return &runtimeError{token: st.keyword, err: fmt.Errorf("%w: %v", errInputRead, err)}
	}

	fields := strings.Split(line, ",")
	if len(fields) != len(st.names) {
		return &runtimeError{
			token: st.keyword,
			err:   fmt.Errorf("%w: expected %d but got %d.", errInputCount, len(st.names), len(fields)),
		}
	}
	for i, name := range st.names {
		if _, err := e.env.assignInput(name, strings.TrimSpace(fields[i])); err != nil {
			return err
		}
	}
	return nil
}

func (e *exec) ifElse(st *ifStmt) (flow, error) {
	cond, err := e.evaluate(st.condition)
	if err != nil {
		return flowNormal, err
	}
	if truthy(cond) {
		return e.execute(st.thenBranch)
	}
	for _, elif := range st.elifs {
		cond, err := e.evaluate(elif.condition)
		if err != nil {
			return flowNormal, err
		}
		if truthy(cond) {
			return e.execute(elif.body)
		}
	}
	if st.elseBranch != nil {
		return e.execute(st.elseBranch)
	}
	return flowNormal, nil
}

func (e *exec) while(st *whileStmt) (flow, error) {
	for {
		cond, err := e.evaluate(st.condition)
		if err != nil {
			return flowNormal, err
		}
		if !truthy(cond) {
			return flowNormal, nil
		}
		fl, err := e.execute(st.body)
		if err != nil {
			return flowNormal, err
		}
		if fl == flowBreak {
			return flowNormal, nil
		}
	}
}

func (e *exec) doWhile(st *doWhileStmt) (flow, error) {
	for {
		fl, err := e.execute(st.body)
		if err != nil {
			return flowNormal, err
		}
		if fl == flowBreak {
			return flowNormal, nil
		}
		cond, err := e.evaluate(st.condition)
		if err != nil {
			return flowNormal, err
		}
		if !truthy(cond) {
			return flowNormal, nil
		}
	}
}

func (e *exec) evaluate(ex expr) (interface{}, error) {
	switch node := ex.(type) {
	case *literalExpr:
		return node.value, nil
	case *groupingExpr:
		return e.evaluate(node.expression)
	case *variableExpr:
		return e.env.get(node.name)
	case *assignExpr:
		if !e.env.existsInAnyScope(node.name.lexeme) {
			return nil, undefinedVar(node.name)
		}
		value, err := e.evaluate(node.value)
		if err != nil {
			return nil, err
		}
		return e.env.assign(node.name, value)
	case *unaryExpr:
		return e.unary(node)
	case *binaryExpr:
		left, err := e.evaluate(node.left)
		if err != nil {
			return nil, err
		}
		right, err := e.evaluate(node.right)
		if err != nil {
			return nil, err
		}
		operation, ok := binaryOperations[node.operator.token]
		if !ok {
			return nil, operationError(node.operator, fmt.Errorf("%w '%s'.", errUndefinedOp, node.operator.lexeme))
		}
		return operation(node.operator, left, right)
	case *logicalExpr:
		return e.logical(node)
	case *incDecExpr:
		return e.incDec(node)
	}
	panic(fmt.Sprintf("unknown expression %T", ex))
}

func (e *exec) unary(node *unaryExpr) (interface{}, error) {
	right, err := e.evaluate(node.right)
	if err != nil {
		return nil, err
	}
	if node.operator.token == tkNot {
		return !truthy(right), nil
	}
	switch value := right.(type) {
	case int64:
		return -value, nil
	case float64:
		return -value, nil
	}
	return nil, operationError(node.operator, errOnlyNumber)
}

func (e *exec) logical(node *logicalExpr) (interface{}, error) {
	left, err := e.evaluate(node.left)
	if err != nil {
		return nil, err
	}
	if node.operator.token == tkOr {
		if truthy(left) {
			return left, nil
		}
	} else if !truthy(left) {
		return left, nil
	}
	return e.evaluate(node.right)
}

func (e *exec) incDec(node *incDecExpr) (interface{}, error) {
	old, err := e.env.get(node.target.name)
	if err != nil {
		return nil, err
	}
	var delta int64 = 1
	if node.operator.token == tkMinusMinus {
		delta = -1
	}

	var updated interface{}
	switch value := old.(type) {
	case int64:
		updated = value + delta
	case float64:
		updated = value + float64(delta)
	default:
		return nil, operationError(node.operator, errOnlyNumber)
	}

	stored, err := e.env.assign(node.target.name, updated)
	if err != nil {
		return nil, err
	}
	if node.prefix {
		return stored, nil
	}
	return old, nil
}

// statementToken returns the token a statement is reported at
func statementToken(s stmt) *token {
	switch st := s.(type) {
	case *exprStmt:
		return expressionToken(st.expression)
	case *printStmt:
		return st.keyword
	case *multiVarStmt:
		return st.keyword
	case *scanStmt:
		return st.keyword
	case *blockStmt:
		if len(st.stmts) > 0 {
			return statementToken(st.stmts[0])
		}
	case *ifStmt:
		return st.keyword
	case *whileStmt:
		return st.keyword
	case *doWhileStmt:
		return st.keyword
	case *breakStmt:
		return st.keyword
	case *continueStmt:
		return st.keyword
	}
	return &token{token: tkEOF, line: 0, pos: -1}
}

func expressionToken(ex expr) *token {
	switch node := ex.(type) {
	case *groupingExpr:
		return expressionToken(node.expression)
	case *variableExpr:
		return node.name
	case *assignExpr:
		return node.name
	case *unaryExpr:
		return node.operator
	case *binaryExpr:
		return node.operator
	case *logicalExpr:
		return node.operator
	case *incDecExpr:
		return node.operator
	}
	return &token{token: tkEOF, line: 0, pos: -1}
}
