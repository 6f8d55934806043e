package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"bisaya/internal"
	"bisaya/internal/config"
)

func TestColorsFollowOutput(t *testing.T) {
	var buf bytes.Buffer
	colors := newColors(config.Default(), &buf)
	if got := colors.Red("x"); got != "x" {
		t.Errorf("a non-terminal output should not be colored, got %q", got)
	}

	cfg := config.Default()
	cfg.Color = false
	colors = newColors(cfg, &buf)
	if got := colors.Yellow("x"); got != "x" {
		t.Errorf("color: false should disable colors, got %q", got)
	}
}

func TestReporterWritesDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	reporter := stderrReporter{colors: newColors(config.Default(), &buf), out: &buf}
	reporter.Report(internal.Diagnostic{Kind: internal.SyntaxError, Line: 2, Where: " at '@'", Message: "Unexpected character."})
	reporter.Report(internal.Diagnostic{Kind: internal.RuntimeError, Line: 3, Where: " at '/'", Message: "Division by zero."})
	expected := "[line 2] Error at '@': Unexpected character.\n[line 3] Runtime error at '/': Division by zero.\n"
	if buf.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestExitCodes(t *testing.T) {
	cases := map[internal.Outcome]int{
		internal.OutcomeOK:           0,
		internal.OutcomeSyntaxError:  exitSyntax,
		internal.OutcomeRuntimeError: exitRuntime,
	}
	for outcome, code := range cases {
		if got := exitCode(outcome); got != code {
			t.Errorf("%v: expected %d, got %d", outcome, code, got)
		}
	}
}

func TestStdinReader(t *testing.T) {
	reader := stdinReader{reader: bufioReader("3,4\r\nlast")}
	for _, expected := range []string{"3,4", "last"} {
		line, err := reader.ReadLine()
		if err != nil || line != expected {
			t.Errorf("expected %q, got %q (%v)", expected, line, err)
		}
	}
	if _, err := reader.ReadLine(); err == nil {
		t.Error("expected an error at end of input")
	}
}

func TestUsage(t *testing.T) {
	if code := run([]string{"-config", "", "a.bpp", "b.bpp"}); code != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, code)
	}
	if code := run([]string{"-config", "", strings.Repeat("x", 8) + ".missing"}); code != exitUsage {
		t.Errorf("expected exit code %d for a missing file, got %d", exitUsage, code)
	}
}

func bufioReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
