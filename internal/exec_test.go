package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type testPrinter struct {
	printed string
}

func (t *testPrinter) Println(a ...interface{}) (n int, err error) {
	for i, e := range a {
		if i != 0 {
			t.printed += " "
		}
		t.printed += fmt.Sprintf("%v", e)
	}
	t.printed += "\n"
	return 0, nil
}

func (t *testPrinter) Equals(p string) bool {
	if t.printed == p+"\n" {
		t.Reset()
		return true
	}
	return false
}

func (t *testPrinter) Reset() {
	t.printed = ""
}

type testReporter struct {
	diagnostics []Diagnostic
}

func (r *testReporter) Report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) first() string {
	if len(r.diagnostics) == 0 {
		return ""
	}
	return r.diagnostics[0].String()
}

type testReader struct {
	lines []string
}

func (r *testReader) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", errors.New("no more input")
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func runProgram(source string, input ...string) (*testPrinter, *testReporter, Outcome) {
	tp := &testPrinter{}
	tr := &testReporter{}
	outcome := RunSource(source, Options{
		Out:         tp,
		Diagnostics: tr,
		In:          &testReader{lines: input},
	})
	return tp, tr, outcome
}

func program(lines ...string) string {
	return "SUGOD\n" + strings.Join(lines, "\n") + "\nKATAPUSAN\n"
}

func checkExpression(t *testing.T, exp string, result ...string) {
	tp, tr, _ := runProgram(program("IPAKITA: " + exp))
	any := false
	for _, r := range result {
		if tp.Equals(r) {
			any = true
			break
		}
	}
	if !any {
		t.Errorf(
			"Error on: \n%s\n\tResult should be equal to %s instead of %q (%s)",
			exp,
			result,
			tp.printed,
			tr.first(),
		)
	}
}

func checkErrorMsg(t *testing.T, source string, errorMsg string, input ...string) {
	_, tr, _ := runProgram(source, input...)
	if tr.first() != errorMsg {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound:\n----\n%s\n----",
			source,
			errorMsg,
			tr.first(),
		)
	}
}

func checkStatements(t *testing.T, code string, resultVar string, result string, input ...string) {
	tp, tr, _ := runProgram(program(code, "IPAKITA: "+resultVar), input...)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\t%s should be equal to %s instead of %q (%s)",
			code,
			resultVar,
			result,
			tp.printed,
			tr.first(),
		)
	}
}

func TestExpressions(t *testing.T) {

	// Arithmetic
	{
		checkExpression(t, "1", "1")
		checkExpression(t, "-1", "-1")
		checkExpression(t, "1 + 2 + 3", "6")
		checkExpression(t, "8 - 2", "6")
		checkExpression(t, "1 * 2 * 3", "6")
		checkExpression(t, "12 / 2", "6")
		checkExpression(t, "7 / 2", "3")
		checkExpression(t, "-7 / 2", "-3")
		checkExpression(t, "7 % 3", "1")
		checkExpression(t, "1 + 2 * 3", "7")
		checkExpression(t, "(1 + 2) * 3", "9")
	}

	// Floats
	{
		checkExpression(t, "3.14", "3.14")
		checkExpression(t, "7.0 / 2", "3.5")
		checkExpression(t, "1.5 + 1", "2.5")
		checkExpression(t, "1.0 + 1.0", "2")
		checkExpression(t, "5.5 % 2", "1.5")
		checkExpression(t, "1e3", "1000")
	}

	// Logical
	{
		checkExpression(t, "OO", "OO")
		checkExpression(t, "DILI OO", "DILI")
		checkExpression(t, "DILI NULL", "OO")
		checkExpression(t, "DILI 0", "DILI")
		checkExpression(t, "OO UG OO", "OO")
		checkExpression(t, "OO UG DILI OO", "DILI")
		checkExpression(t, "DILI OO O OO", "OO")
		checkExpression(t, "DILI OO O DILI OO", "DILI")

		// Operands are returned unchanged
		checkExpression(t, "NULL O 5", "5")
		checkExpression(t, `0 UG "x"`, "x")
		checkExpression(t, "NULL UG 5", "nil")
	}

	// Comparisons
	{
		checkExpression(t, "10 > 5", "OO")
		checkExpression(t, "10 < 5", "DILI")
		checkExpression(t, "5 >= 5", "OO")
		checkExpression(t, "4 >= 5", "DILI")
		checkExpression(t, "5 <= 5", "OO")
		checkExpression(t, "10 <= 5", "DILI")
		checkExpression(t, "5 == 5", "OO")
		checkExpression(t, "5 <> 5", "DILI")
		checkExpression(t, "1 == 1.0", "OO")
		checkExpression(t, "1.5 > 1", "OO")
		checkExpression(t, `"a" == "a"`, "OO")
		checkExpression(t, `"a" <> "b"`, "OO")
		checkExpression(t, "'a' == 'a'", "OO")
		checkExpression(t, "NULL == NULL", "OO")
		checkExpression(t, "NULL == 0", "DILI")
		checkExpression(t, "(5 <= 5) UG (DILI OO O ((1*(1+4)) == 5))", "OO")
	}

	// Text
	{
		checkExpression(t, `"hello"`, "hello")
		checkExpression(t, `"te" + "st"`, "test")
		checkExpression(t, `"a" & 1`, "a1")
		checkExpression(t, `1 & OO & NULL`, "1OOnil")
		checkExpression(t, `'x' & 'y'`, "xy")
		checkExpression(t, `"a" & $ & "b"`, "a\nb")
		checkExpression(t, `"a " $ " b"`, "a\nb")
		checkExpression(t, `$`, "\n")
		checkExpression(t, `"a" & [#] & "b"`, "a#b")
		checkExpression(t, `"a" [&] "b"`, "a&b")
		checkExpression(t, `[[] & "x" & []]`, "[x]")
		checkExpression(t, `"a" & [n] & "b"`, "a\nb")
		checkExpression(t, `"(" & [] & ")"`, "()")
	}
}

func TestDeclarations(t *testing.T) {
	checkStatements(t, "MUGNA NUMERO x = 5", "x", "5")
	checkStatements(t, "MUGNA NUMERO a=1, b=2", "a & b", "12")
	checkStatements(t, "MUGNA NUMERO x, y, z=5", "x & y & z", "nilnil5")
	checkStatements(t, "MUGNA TIPIK f = 2", "f", "2")
	checkStatements(t, "MUGNA TIPIK f = 2\nf = f / 4", "f", "0.5")
	checkStatements(t, "MUGNA LETRA c = 'n'", "c", "n")
	checkStatements(t, `MUGNA TINUOD t = "OO"`, "t", "OO")
	checkStatements(t, `MUGNA TINUOD t = "DILI"`, "t", "DILI")
	checkStatements(t, `MUGNA TINUOD t = "DILI"`, "DILI t", "OO")
	checkStatements(t, "MUGNA TINUOD t = 1 < 2", "t", "OO")
	checkStatements(t, "MUGNA NUMERO a = NULL", "a", "nil")
	checkStatements(t, "MUGNA NUMERO a, b\na = b = 4", "a + b", "8")
}

func TestAssignment(t *testing.T) {
	checkStatements(t, "MUGNA NUMERO a = 1\na = 2.0", "a", "2")
	checkStatements(t, "MUGNA NUMERO a = 1\na += 4", "a", "5")
	checkStatements(t, "MUGNA NUMERO a = 10\na -= 4", "a", "6")
	checkStatements(t, "MUGNA NUMERO a = 10\na *= 2", "a", "20")
	checkStatements(t, "MUGNA NUMERO a = 10\na /= 3", "a", "3")
	checkStatements(t, "MUGNA NUMERO a = 10\na %= 4", "a", "2")
	checkStatements(t, `MUGNA TINUOD t = OO`+"\n"+`t = "DILI"`, "t", "DILI")
}

func TestIncrementDecrement(t *testing.T) {
	checkStatements(t, "MUGNA NUMERO a = 1\na++", "a", "2")
	checkStatements(t, "MUGNA NUMERO a = 1", `a++ & " " & a`, "1 2")
	checkStatements(t, "MUGNA NUMERO a = 1", "++a", "2")
	checkStatements(t, "MUGNA NUMERO a = 5\na--", "a", "4")
	checkStatements(t, "MUGNA NUMERO a = 5\nMUGNA NUMERO b = --a", "a & b", "44")
	checkStatements(t, "MUGNA NUMERO a = 5\na -- not a decrement", "a", "5")
	checkStatements(t, "MUGNA TIPIK f = 1.5\nf++", "f", "2.5")
}

func TestScopes(t *testing.T) {
	tp, tr, outcome := runProgram(program(
		"MUGNA NUMERO x = 1",
		"PUNDOK{",
		"MUGNA NUMERO x = 2",
		"IPAKITA: x",
		"}",
		"IPAKITA: x",
	))
	if outcome != OutcomeOK || tp.printed != "2\n1\n" {
		t.Errorf("unexpected result %q %v (%s)", tp.printed, outcome, tr.first())
	}

	// Inner blocks assign to outer bindings
	checkStatements(t, "MUGNA NUMERO x = 1\nPUNDOK{\nx = 3\n}", "x", "3")
}

func TestControlFlow(t *testing.T) {
	ifElse := `MUGNA NUMERO x = %d
MUGNA LETRA grade
KUNG (x > 10)
PUNDOK{
grade = 'A'
}
KUNG PA (x > 3)
PUNDOK{
grade = 'B'
}
KUNG WALA
PUNDOK{
grade = 'C'
}`
	checkStatements(t, fmt.Sprintf(ifElse, 20), "grade", "A")
	checkStatements(t, fmt.Sprintf(ifElse, 5), "grade", "B")
	checkStatements(t, fmt.Sprintf(ifElse, 1), "grade", "C")

	checkStatements(t, `MUGNA NUMERO x = 0
KUNG (DILI OO)
PUNDOK{
x = 1
}
KUNG DILI
PUNDOK{
x = 2
}`, "x", "2")

	// While with break
	checkStatements(t, `MUGNA NUMERO i=0, total=0
MINTRAS (i < 10)
PUNDOK{
i++
KUNG (i == 5)
PUNDOK{
HUNONG
}
total += i
}`, "total", "10")

	// Break on the second iteration
	tp, tr, _ := runProgram(program(
		"MUGNA NUMERO i = 0",
		"MINTRAS (OO)",
		"PUNDOK{",
		"i++",
		"IPAKITA: i",
		"KUNG (i == 2)",
		"PUNDOK{",
		"HUNONG",
		"}",
		"}",
	))
	if tp.printed != "1\n2\n" {
		t.Errorf("expected the loop to stop on its second iteration, got %q (%s)", tp.printed, tr.first())
	}

	// For loop counting up
	checkStatements(t, `MUGNA NUMERO sum=0
ALANG SA (MUGNA NUMERO i=1, i<=5, i++)
PUNDOK{
sum += i
}`, "sum", "15")

	// The increment is the last statement of the body, so PADAYON skips it
	checkStatements(t, `MUGNA NUMERO runs=0
ALANG SA (MUGNA NUMERO i=0, i<3, i++)
PUNDOK{
runs++
KUNG (runs > 5)
PUNDOK{
HUNONG
}
KUNG (i == 1)
PUNDOK{
PADAYON
}
}`, "runs", "6")

	// The loop variable lives in the loop's own scope
	checkErrorMsg(t,
		program("ALANG SA (MUGNA NUMERO i=0, i<1, i++) IPAKITA: i", "IPAKITA: i"),
		"[line 3] Runtime error at 'i': Undefined variable 'i'.",
	)

	// For over an existing variable
	checkStatements(t, `MUGNA NUMERO i, n=0
ALANG SA (i=0, i<3, i++)
PUNDOK{
n += 2
}`, "i & n", "36")

	// Do-while runs the body at least once
	checkStatements(t, `MUGNA NUMERO n=0
BUHATA
PUNDOK{
n++
}
MINTRAS (n < 3)`, "n", "3")
	checkStatements(t, `MUGNA NUMERO n=10
BUHATA
PUNDOK{
n++
}
MINTRAS (n < 3)`, "n", "11")

	// Continue in a do-while goes to the condition
	checkStatements(t, `MUGNA NUMERO n=0, odd=0
BUHATA
PUNDOK{
n++
KUNG (n % 2 == 0)
PUNDOK{
PADAYON
}
odd += 1
}
MINTRAS (n < 6)`, "odd", "3")

	// Break only leaves the innermost loop
	checkStatements(t, `MUGNA NUMERO i=0, count=0
MINTRAS (i < 3)
PUNDOK{
i++
MINTRAS (OO)
PUNDOK{
count++
HUNONG
}
}`, "count", "3")
}

func TestScan(t *testing.T) {
	checkStatements(t, "MUGNA NUMERO a, b\nDAWAT: a, b", "a + b", "7", "3,4")
	checkStatements(t, "MUGNA NUMERO a\nMUGNA TIPIK b\nDAWAT: a, b", "a & \" \" & b", "3 4.5", " 3 , 4.5 ")
	checkStatements(t, "MUGNA LETRA c\nMUGNA TINUOD t\nDAWAT: c, t", "c & t", "zOO", "z,\"OO\"")
	checkStatements(t, "MUGNA TINUOD t\nDAWAT: t", "t", "DILI", "DILI")

	checkErrorMsg(t,
		program("MUGNA NUMERO a, b", "DAWAT: a, b"),
		"[line 3] Runtime error at 'DAWAT': Wrong number of input values: expected 2 but got 1.",
		"3",
	)
	checkErrorMsg(t,
		program("MUGNA NUMERO a", "DAWAT: a, nope"),
		"[line 3] Runtime error at 'nope': Undefined variable 'nope'.",
		"1,2",
	)
	checkErrorMsg(t,
		program("MUGNA NUMERO a", "DAWAT: a"),
		`[line 3] Runtime error at 'a': Type mismatch: cannot read "x" as NUMERO`,
		"x",
	)
}

func TestRuntimeErrors(t *testing.T) {
	checkErrorMsg(t,
		program("IPAKITA: x"),
		"[line 2] Runtime error at 'x': Undefined variable 'x'.",
	)
	checkErrorMsg(t,
		program("x = 1"),
		"[line 2] Runtime error at 'x': Undefined variable 'x'.",
	)
	// The target is checked before the value is computed
	checkErrorMsg(t,
		program("x = 1 / 0"),
		"[line 2] Runtime error at 'x': Undefined variable 'x'.",
	)
	checkErrorMsg(t,
		program("MUGNA NUMERO a=1, b=0", "IPAKITA: a / b"),
		"[line 3] Runtime error at '/': Division by zero.",
	)
	checkErrorMsg(t,
		program("MUGNA TIPIK a=1, b=0", "IPAKITA: a % b"),
		"[line 3] Runtime error at '%': Division by zero.",
	)
	checkErrorMsg(t,
		program("MUGNA NUMERO a", "a = 1.5"),
		"[line 3] Runtime error at 'a': Type mismatch: expected NUMERO but got TIPIK 1.5",
	)
	checkErrorMsg(t,
		program("MUGNA LETRA c", "c = 1"),
		"[line 3] Runtime error at 'c': Type mismatch: expected LETRA but got NUMERO 1",
	)
	checkErrorMsg(t,
		program(`IPAKITA: "a" < "b"`),
		"[line 2] Runtime error at '<': Operands must be numbers.",
	)
	checkErrorMsg(t,
		program(`IPAKITA: "a" + 1`),
		"[line 2] Runtime error at '+': Operands must be two numbers, two strings or two characters.",
	)
	checkErrorMsg(t,
		program(`IPAKITA: -"a"`),
		"[line 2] Runtime error at '-': Operand must be a number.",
	)
	checkErrorMsg(t,
		program("MUGNA LETRA c = 'a'", "c++"),
		"[line 3] Runtime error at '++': Operand must be a number.",
	)
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	tp, tr, outcome := runProgram(program(
		"IPAKITA: 1",
		"IPAKITA: 1 / 0",
		"IPAKITA: 2",
	))
	if outcome != OutcomeRuntimeError {
		t.Errorf("expected a runtime error, got %v", outcome)
	}
	if tp.printed != "1\n" {
		t.Errorf("execution should stop at the error, printed %q", tp.printed)
	}
	if len(tr.diagnostics) != 1 || tr.diagnostics[0].Kind != RuntimeError {
		t.Errorf("expected one runtime diagnostic, got %v", tr.diagnostics)
	}
}

func TestSyntaxErrorPreventsExecution(t *testing.T) {
	tp, _, outcome := runProgram(program("IPAKITA: 1", "IPAKITA: (2"))
	if outcome != OutcomeSyntaxError {
		t.Errorf("expected a syntax error, got %v", outcome)
	}
	if tp.printed != "" {
		t.Errorf("nothing should run, printed %q", tp.printed)
	}
}

func TestScanAndParseErrorsReportedTogether(t *testing.T) {
	tp, tr, outcome := runProgram(program("IPAKITA: @", "IPAKITA: (1", "HUNONG", "IPAKITA: 1"))
	if outcome != OutcomeSyntaxError {
		t.Errorf("expected a syntax error, got %v", outcome)
	}
	if tp.printed != "" {
		t.Errorf("nothing should run, printed %q", tp.printed)
	}
	if len(tr.diagnostics) != 3 {
		t.Errorf("expected 3 diagnostics, got %v", tr.diagnostics)
	}
}

func TestEmptyProgram(t *testing.T) {
	tp, tr, outcome := runProgram("SUGOD\nKATAPUSAN")
	if outcome != OutcomeOK || tp.printed != "" || len(tr.diagnostics) != 0 {
		t.Errorf("unexpected result %q %v %v", tp.printed, outcome, tr.diagnostics)
	}
}

func TestComments(t *testing.T) {
	tp, tr, _ := runProgram(`-- leading comment
SUGOD -- start
MUGNA NUMERO x = 1 -- one
-- IPAKITA: 99
IPAKITA: x
KATAPUSAN -- end`)
	if tp.printed != "1\n" {
		t.Errorf("unexpected output %q (%s)", tp.printed, tr.first())
	}
}

func TestSampleProgram(t *testing.T) {
	tp, tr, outcome := runProgram(`SUGOD
MUGNA NUMERO x, y, z=5
MUGNA LETRA a_1='n'
MUGNA TINUOD t="OO"
x=y=4
a_1='c'
IPAKITA: x & t & z & $ & a_1 & [#] & "last"
KATAPUSAN`)
	if outcome != OutcomeOK {
		t.Fatalf("unexpected outcome %v (%s)", outcome, tr.first())
	}
	if tp.printed != "4OO5\nc#last\n" {
		t.Errorf("unexpected output %q", tp.printed)
	}
}
