// Command bisaya runs Bisaya++ programs from a file or interactively.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"bisaya/internal"
	"bisaya/internal/config"
)

const (
	exitUsage   = 64
	exitSyntax  = 65
	exitRuntime = 70
)

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

// stderrReporter prints diagnostics as they are found
type stderrReporter struct {
	colors *color.Color
	out    io.Writer
}

func (r stderrReporter) Report(d internal.Diagnostic) {
	msg := d.String()
	if d.Kind == internal.RuntimeError {
		msg = r.colors.Yellow(msg)
	} else {
		msg = r.colors.Red(msg)
	}
	fmt.Fprintln(r.out, msg)
}

// stdinReader feeds DAWAT from standard input
type stdinReader struct {
	reader *bufio.Reader
}

func (s stdinReader) ReadLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// linerReader feeds DAWAT from the interactive line editor
type linerReader struct {
	ln *liner.State
}

func (l linerReader) ReadLine() (string, error) {
	return l.ln.Prompt("")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("bisaya", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath(), "path to the settings file")
	logLevel := fs.String("log-level", "", "log level (overrides the settings file)")
	tokens := fs.Bool("tokens", false, "print the tokens of the program and exit")
	tree := fs.Bool("ast", false, "print the syntax tree of the program and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: bisaya [flags] [/path/to/source.bpp]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	reporter := stderrReporter{colors: newColors(cfg, os.Stderr), out: os.Stderr}

	if fs.NArg() == 0 {
		return repl(cfg, logger, reporter)
	}

	path := fs.Arg(0)
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	source := string(b)
	logger.WithField("path", path).Debug("running file")

	switch {
	case *tokens:
		out, ok := internal.DumpTokens(source, reporter)
		fmt.Print(out)
		if !ok {
			return exitSyntax
		}
		return 0
	case *tree:
		out, ok := internal.PrintTree(source, reporter)
		fmt.Print(out)
		if !ok {
			return exitSyntax
		}
		return 0
	}

	return exitCode(internal.RunSource(source, internal.Options{
		Out:         stdPrinter{},
		Diagnostics: reporter,
		In:          stdinReader{reader: bufio.NewReader(os.Stdin)},
		Logger:      logger,
	}))
}

// newColors colors output written to w when w is a terminal and the
// settings allow it
func newColors(cfg *config.Config, w io.Writer) *color.Color {
	colors := color.New()
	// New only looks at stdout
	colors.Enable()
	colors.SetOutput(w)
	if !cfg.Color {
		colors.Disable()
	}
	return colors
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: !cfg.Color})
	return logger, nil
}

func exitCode(outcome internal.Outcome) int {
	switch outcome {
	case internal.OutcomeSyntaxError:
		return exitSyntax
	case internal.OutcomeRuntimeError:
		return exitRuntime
	}
	return 0
}

// repl collects lines until KATAPUSAN and runs each complete program
func repl(cfg *config.Config, logger *logrus.Logger, reporter internal.Reporter) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	var program strings.Builder
	for {
		prompt := cfg.Prompt
		if program.Len() > 0 {
			prompt = strings.Repeat(".", len(strings.TrimRight(prompt, " "))) + " "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			program.Reset()
			continue
		}
		if err != nil {
			fmt.Println()
			return 0
		}
		if program.Len() == 0 && strings.TrimSpace(line) == ":quit" {
			return 0
		}
		if program.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}

		ln.AppendHistory(line)
		program.WriteString(line)
		program.WriteByte('\n')
		if strings.TrimSpace(line) != "KATAPUSAN" {
			continue
		}

		outcome := internal.RunSource(program.String(), internal.Options{
			Out:         stdPrinter{},
			Diagnostics: reporter,
			In:          linerReader{ln: ln},
			Logger:      logger,
		})
		logger.WithField("outcome", outcome.String()).Debug("program finished")
		program.Reset()
	}
}
