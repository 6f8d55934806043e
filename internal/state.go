package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DiagnosticKind tells syntax errors apart from runtime errors
type DiagnosticKind int

const (
	// SyntaxError is reported by the scanner or the parser
	SyntaxError DiagnosticKind = iota
	// RuntimeError is reported by the interpreter
	RuntimeError
)

// Diagnostic is a single error record sent to a Reporter
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Kind == RuntimeError {
		return fmt.Sprintf("[line %d] Runtime error%s: %s", d.Line, d.Where, d.Message)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter receives diagnostics in the order they are found
type Reporter interface {
	Report(d Diagnostic)
}

// parseError is the sentinel the parser panics with to unwind one statement
type parseError struct {
	err  error
	line int
}

// runtimeError is the single fault kind raised while executing statements
type runtimeError struct {
	token *token
	err   error
}

func (r *runtimeError) Error() string {
	return r.err.Error()
}

func (r *runtimeError) Unwrap() error {
	return r.err
}

// interpreterState stores the state of a interpreter
type interpreterState struct {
	source string
	tokens []token
	stmts  []stmt

	errors   []Diagnostic
	reporter Reporter
	logger   *logrus.Logger

	// lines holding a lexical error, parse errors there are follow-ups
	scanErrorLines map[int]bool
}

func newInterpreterState(source string, reporter Reporter, logger *logrus.Logger) *interpreterState {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &interpreterState{
		source:   source,
		errors:         make([]Diagnostic, 0),
		reporter:       reporter,
		logger:         logger,
		scanErrorLines: make(map[int]bool),
	}
}

func (s *interpreterState) log(phase string) *logrus.Entry {
	return s.logger.WithField("phase", phase)
}

func (s *interpreterState) report(d Diagnostic) {
	s.errors = append(s.errors, d)
	if s.reporter != nil {
		s.reporter.Report(d)
	}
}

// setError records a lexical error at line on the offending text
func (s *interpreterState) setError(err error, line int, lexeme string) {
	s.scanErrorLines[line] = true
	s.report(Diagnostic{Kind: SyntaxError, Line: line, Where: fmt.Sprintf(" at '%s'", lexeme), Message: err.Error()})
}

// tokenError records a syntax error located at tk
func (s *interpreterState) tokenError(err error, tk *token) {
	if s.scanErrorLines[tk.line] {
		return
	}
	s.report(Diagnostic{Kind: SyntaxError, Line: tk.line, Where: where(tk), Message: err.Error()})
}

// fatalError records a syntax error and unwinds the statement being parsed
func (s *interpreterState) fatalError(err error, tk *token) {
	s.tokenError(err, tk)
	panic(parseError{err: err, line: tk.line})
}

func (s *interpreterState) runtimeErr(rtErr *runtimeError) {
	s.report(Diagnostic{
		Kind:    RuntimeError,
		Line:    rtErr.token.line,
		Where:   where(rtErr.token),
		Message: rtErr.err.Error(),
	})
}

// Valid returns true if the interpreter is in a valid states else false
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

func where(tk *token) string {
	switch tk.token {
	case tkEOF:
		return " at end"
	case tkNewline:
		return " at end of line"
	}
	return fmt.Sprintf(" at '%s'", tk.lexeme)
}

// Lexer errors
var errUnexpectedChar = errors.New("Unexpected character.")
var errUnterminatedString = errors.New("Unterminated string.")
var errUnterminatedChar = errors.New("Unterminated character literal.")
var errInvalidChar = errors.New("Character literal must contain exactly one character.")
var errUnterminatedEscape = errors.New("Unterminated escape code.")
var errInvalidEscape = errors.New("Invalid escape code.")
var errInvalidExponent = errors.New("Invalid scientific notation: expected digit after 'e'.")
var errInvalidNumber = errors.New("Invalid number format.")

// Parser errors
var errExpectedStart = errors.New("Expect 'SUGOD' at the start of the program.")
var errExpectedEnd = errors.New("Expect 'KATAPUSAN' at the end of the program.")
var errAfterEnd = errors.New("Unexpected token after 'KATAPUSAN'.")
var errExpectedNewline = errors.New("Expect new line after statement.")
var errExpectedExpr = errors.New("Expect expression.")
var errExpectedIdentifier = errors.New("Expected variable name.")
var errInvalidDataType = errors.New("Invalid data type.")
var errDuplicateDecl = errors.New("Variable is already declared in this statement.")
var errInvalidBool = errors.New("Invalid boolean value. Use \"OO\" or \"DILI\".")
var errDeclTypeMismatch = errors.New("Type mismatch in declaration.")
var errInvalidAssignTarget = errors.New("Invalid assignment target.")
var errInvalidIncDecTarget = errors.New("Can only increment or decrement a variable.")
var errMissingConcat = errors.New("Missing '&' operator between expressions.")
var errExpectedColon = errors.New("Expect ':' after keyword.")
var errExpectedOpenParen = errors.New("Expect '(' before condition.")
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errExpectedOpenBrace = errors.New("Expect '{' after 'PUNDOK'.")
var errUnclosedBrace = errors.New("Expect '}' after block.")
var errUnexpectedBrace = errors.New("Unexpected '}' outside a block.")
var errExpectedComma = errors.New("Expect ',' in 'ALANG SA' header.")
var errExpectedWhile = errors.New("Expect 'MINTRAS' after 'BUHATA' body.")
var errOnlyAllowedInsideLoop = errors.New("Can only be used inside a loop.")

// Runtime errors
var errUndefinedVar = errors.New("Undefined variable")
var errTypeMismatch = errors.New("Type mismatch")
var errOnlyNumbers = errors.New("Operands must be numbers.")
var errOnlyNumber = errors.New("Operand must be a number.")
var errInvalidPlus = errors.New("Operands must be two numbers, two strings or two characters.")
var errDivisionByZero = errors.New("Division by zero.")
var errUndefinedOp = errors.New("Undefined operator")
var errInputCount = errors.New("Wrong number of input values")
var errInputRead = errors.New("Cannot read input")
