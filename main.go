package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/peterh/liner"
	"github.com/tliron/commonlog"
	"github.com/tliron/kutil/util"

	"jocks/ast"
	"jocks/config"
	"jocks/interpreter"
	"jocks/lsp"
	"jocks/parser"
	"jocks/report"
	"jocks/resolver"

	_ "github.com/tliron/commonlog/simple"
)

const (
	version    = "0.1.0"
	promptMain = "> "
	promptCont = "... "
	replFile   = "<repl>"
)

var log = commonlog.GetLogger("jocks.cli")

var (
	configPath  = flag.String("config", "", "configuration file (jocks.toml or jocks.yaml), searched in the working directory by default")
	printAST    = flag.Bool("print", false, "print the resolved program instead of running it")
	diagFormat  = flag.String("diagnostics", "", "diagnostics format: text or yaml")
	colorMode   = flag.String("color", "", "colored diagnostics: auto, always or never")
	verbosity   = flag.Int("v", 0, "log verbosity, overrides the configuration when set")
	serveLSP    = flag.Bool("lsp", false, "serve the language server protocol on stdio")
	cpuProfile  = flag.String("cpuprofile", "", "write a CPU profile to this file")
	showVersion = flag.Bool("version", false, "print the version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %v [flags] [filename]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("jocks", version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		util.Exit(2)
	}

	var logPath *string
	if cfg.LogFile != "" {
		logPath = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, logPath)
	log.Debugf("configuration from %q", cfg.Path)

	// Start CPU profile if enabled via the flag or the env-var CPUPROFILE.
	prof_out := *cpuProfile
	if prof_out == "" {
		prof_out = os.Getenv("CPUPROFILE")
	}
	if prof_out != "" {
		f, err := os.Create(prof_out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot create profile output file: '%v' (%v).\n", prof_out, err)
			util.Exit(1)
		}
		pprof.StartCPUProfile(f)
		util.OnExit(pprof.StopCPUProfile)
	}

	if *serveLSP {
		if err := lsp.New(version).RunStdio(); err != nil {
			log.Errorf("language server: %v", err)
			util.Exit(1)
		}
		util.Exit(0)
	}

	switch flag.NArg() {
	case 0:
		util.Exit(execPrompt(cfg))
	case 1:
		util.Exit(execFromFile(cfg, flag.Arg(0)))

	default:
		flag.Usage()
		util.Exit(1)
	}
}

// Configuration file values, then the flags given explicitly.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "diagnostics":
			cfg.DiagnosticsFormat = *diagFormat
		case "color":
			cfg.Color = *colorMode
		case "v":
			cfg.Verbosity = *verbosity
		}
	})

	return cfg, cfg.Validate()
}

func newPrinter(cfg *config.Config) *report.Printer {
	format, _ := report.ParseFormat(cfg.DiagnosticsFormat)
	color, _ := report.ParseColorMode(cfg.Color)
	return report.NewPrinter(os.Stderr, format, color)
}

func printDiagnostics(printer *report.Printer, diagnostics []report.Diagnostic) {
	if err := printer.Print(diagnostics); err != nil {
		log.Errorf("printing diagnostics: %v", err)
	}
}

// Scans, parses and resolves source. The statements are nil if any phase
// reported an error.
func compile(file, source string, reporter *report.Reporter, globals []string) []ast.Stmt {
	stmts := parser.Parse(file, source, reporter)
	if stmts == nil {
		return nil
	}

	resolver.New(reporter, globals...).Resolve(stmts)
	if reporter.HasErrors() {
		return nil
	}

	return stmts
}

func execFromFile(cfg *config.Config, filepath string) int {
	source, err := os.ReadFile(filepath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open file '%v'  (%v).\n", filepath, err.Error())
		return 1
	}

	printer := newPrinter(cfg)
	reporter := report.NewReporter()

	stmts := compile(filepath, string(source), reporter, nil)
	if stmts == nil {
		printDiagnostics(printer, reporter.Diagnostics())
		return 1
	}

	if *printAST {
		fmt.Print(ast.Sprint(stmts))
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interp := interpreter.New(interpreter.WithMaxCallDepth(cfg.MaxCallDepth))
	if _, err := interp.Interpret(ctx, stmts); err != nil {
		reportRuntimeError(printer, err)
		return 1
	}

	return 0
}

func reportRuntimeError(printer *report.Printer, err error) {
	var fault *interpreter.Fault
	if errors.As(err, &fault) {
		log.Errorf("%v", fault)
		printDiagnostics(printer, []report.Diagnostic{fault.Diagnostic()})
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}

// One interpreter for the whole session. Each input is resolved against the
// globals earlier inputs defined.
func execPrompt(cfg *config.Config) int {
	fmt.Fprintf(os.Stderr, "Jocks %v REPL\nCtrl+C cancels input, Ctrl+D exits.\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	printer := newPrinter(cfg)
	interp := interpreter.New(interpreter.WithMaxCallDepth(cfg.MaxCallDepth))

	for {
		source, ok := readInput(ln)
		if !ok {
			break
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		reporter := report.NewReporter()
		stmts := compile(replFile, source, reporter, interp.GlobalNames())
		if stmts == nil {
			printDiagnostics(printer, reporter.Diagnostics())
			continue
		}

		runLine(interp, printer, stmts)
	}

	fmt.Fprintln(os.Stderr, "[EXIT]")
	return 0
}

// Runs one REPL input, echoing the value of a trailing expression statement.
// Ctrl+C cancels a running program.
func runLine(interp *interpreter.Interpreter, printer *report.Printer, stmts []ast.Stmt) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v, err := interp.Interpret(ctx, stmts)
	if err != nil {
		reportRuntimeError(printer, err)
		return
	}

	if _, ok := stmts[len(stmts)-1].(*ast.Expression); ok {
		text, err := interp.Stringify(ctx, v)
		if err != nil {
			reportRuntimeError(printer, err)
			return
		}
		fmt.Println(text)
	}
}

// Reads lines until they form a complete program.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// Input is incomplete when parsing fails only because it ran out.
func incomplete(source string) bool {
	reporter := report.NewReporter()
	if parser.Parse(replFile, source, reporter) != nil {
		return false
	}

	for _, d := range reporter.Diagnostics() {
		if !strings.HasPrefix(d.Message, "Error at end") {
			return false
		}
	}

	return reporter.HasErrors()
}
