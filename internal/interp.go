package internal

import (
	"strings"

	"github.com/sirupsen/logrus"
)

//go:generate sh -c "go run ../cmd/astgen Expr > expr.go"
//go:generate sh -c "go run ../cmd/astgen Stmt > stmt.go"

// Outcome is the result of running a program
type Outcome int

const (
	// OutcomeOK means the program ran to completion
	OutcomeOK Outcome = iota
	// OutcomeSyntaxError means the program was rejected before execution
	OutcomeSyntaxError
	// OutcomeRuntimeError means execution stopped at a runtime error
	OutcomeRuntimeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSyntaxError:
		return "syntax error"
	case OutcomeRuntimeError:
		return "runtime error"
	}
	return "ok"
}

// Printer receives program output, one line per IPAKITA
type Printer interface {
	Println(a ...interface{}) (n int, err error)
}

// LineReader supplies one line of input per DAWAT
type LineReader interface {
	ReadLine() (string, error)
}

// Options configure a single run
type Options struct {
	Out         Printer
	Diagnostics Reporter
	In          LineReader
	Logger      *logrus.Logger
}

// RunSource runs source code on a fresh interpreter instance
func RunSource(source string, opts Options) Outcome {
	state := newInterpreterState(source, opts.Diagnostics, opts.Logger)

	if !frontend(state) {
		return OutcomeSyntaxError
	}

	e := &exec{
		state: state,
		env:   newEnv(),
		out:   opts.Out,
		in:    opts.In,
	}
	if e.out == nil {
		e.out = discard{}
	}
	if !e.interpret() {
		return OutcomeRuntimeError
	}
	return OutcomeOK
}

// DumpTokens scans source and renders one token per line
func DumpTokens(source string, reporter Reporter) (string, bool) {
	state := newInterpreterState(source, reporter, nil)
	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()

	var out strings.Builder
	for i := range state.tokens {
		out.WriteString(state.tokens[i].String())
		out.WriteByte('\n')
	}
	return out.String(), state.Valid()
}

// frontend scans and parses the program held by state
func frontend(state *interpreterState) bool {
	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()

	// Parse even after scan errors so later errors are reported too
	parser := &parser{
		state: state,
	}
	parser.parse()
	return state.Valid()
}

type discard struct{}

func (discard) Println(a ...interface{}) (int, error) {
	return 0, nil
}
