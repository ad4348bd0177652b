package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"sortle/interpreter-go/pkg/debugger"
	"sortle/interpreter-go/pkg/driver"
	"sortle/interpreter-go/pkg/interpreter"
	"sortle/interpreter-go/pkg/parser"
	"sortle/interpreter-go/pkg/regex"
)

func runEntry(args []string) int {
	fs := flag.NewFlagSet("sortle run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	tracePath := fs.String("trace", "", "write a YAML step trace to this file (or \"-\" for stdout)")
	maxSteps := fs.Int("max-steps", 0, "abort after this many rewrite steps (0 = unbounded; not applied with --trace)")
	configPath := fs.String("config", "sortle.yaml", "project configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "sortle run requires exactly one source file")
		return 1
	}

	cfg, err := driver.LoadConfig(*configPath)
	if err != nil {
		return reportError(err)
	}

	// CLI flags override sortle.yaml, which overrides the built-in defaults
	// (unbounded steps, no trace) — spec.md §B "Configuration".
	var flagSet struct{ trace, maxSteps bool }
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			flagSet.trace = true
		case "max-steps":
			flagSet.maxSteps = true
		}
	})

	effectiveTrace := *tracePath
	if !flagSet.trace && cfg.Trace {
		effectiveTrace = cfg.TracePath
		if effectiveTrace == "" {
			effectiveTrace = "-"
		}
	}
	effectiveMaxSteps := *maxSteps
	if !flagSet.maxSteps && cfg.StepLimit > 0 {
		effectiveMaxSteps = cfg.StepLimit
	}

	exprs, err := driver.LoadProgram(fs.Arg(0))
	if err != nil {
		return reportError(err)
	}

	state := interpreter.NewState(exprs)

	if effectiveTrace != "" {
		result, trace, err := driver.RunWithTrace(state)
		if err != nil {
			return reportError(err)
		}
		out := effectiveTrace
		if out == "-" {
			out = ""
		}
		if err := driver.WriteTrace(trace, out); err != nil {
			return reportError(err)
		}
		fmt.Fprintln(os.Stdout, result)
		return 0
	}

	if effectiveMaxSteps > 0 {
		result, err := runBounded(state, effectiveMaxSteps)
		if err != nil {
			return reportError(err)
		}
		fmt.Fprintln(os.Stdout, result)
		return 0
	}

	result, err := interpreter.Run(state)
	if err != nil {
		return reportError(err)
	}
	fmt.Fprintln(os.Stdout, result)
	return 0
}

func runBounded(state *interpreter.State, limit int) (string, error) {
	if state.Len() == 0 {
		return "", fmt.Errorf("sortle: empty program has no output")
	}
	if state.Len() == 1 {
		return state.NameAt(0), nil
	}
	ip := 0
	for i := 0; i < limit && state.Len() > 1; i++ {
		next, err := interpreter.Step(state, ip)
		if err != nil {
			return "", err
		}
		ip = next
	}
	if state.Len() > 1 {
		return "", fmt.Errorf("sortle: exceeded step limit (%d) with %d expressions remaining", limit, state.Len())
	}
	return state.NameAt(0), nil
}

func runStep(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "sortle step requires exactly one source file")
		return 1
	}
	exprs, err := driver.LoadProgram(args[0])
	if err != nil {
		return reportError(err)
	}

	d := debugger.NewStepper(exprs)
	for !d.Done() {
		diff, err := d.Step()
		if err != nil {
			return reportError(err)
		}
		if diff.Deleted {
			fmt.Fprintf(os.Stdout, "ip=%d deleted %q\n", diff.IP, diff.BeforeName)
		} else {
			fmt.Fprintf(os.Stdout, "ip=%d %q -> %q\n", diff.IP, diff.BeforeName, diff.AfterName)
		}
	}
	result, err := d.Result()
	if err != nil {
		return reportError(err)
	}
	fmt.Fprintln(os.Stdout, result)
	return 0
}

func runFetch(args []string) int {
	fs := flag.NewFlagSet("sortle fetch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cacheDir := fs.String("cache", ".sortle/cache", "directory to clone sources into")
	configPath := fs.String("config", "sortle.yaml", "project configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "sortle fetch requires exactly one source name")
		return 1
	}

	cfg, err := driver.LoadConfig(*configPath)
	if err != nil {
		return reportError(err)
	}
	name := fs.Arg(0)
	spec, ok := cfg.Sources[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "sortle fetch: no source named %q in %s\n", name, *configPath)
		return 1
	}

	result, err := driver.Fetch(*cacheDir, name, spec)
	if err != nil {
		return reportError(err)
	}
	fmt.Fprintf(os.Stdout, "%s @ %s -> %s\n", name, result.CommitHash, result.LocalPath)
	return 0
}

// reportError renders an error to stderr the way spec §6/§7 describe: a
// caret-underline snippet for parse errors, a "when evaluating regex: ..."
// line for regex compile errors, and a plain "error: ..." line otherwise.
func reportError(err error) int {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		fmt.Fprintln(os.Stderr, parseErr.Error())
		if snippet := parseErr.Snippet(); snippet != "" {
			fmt.Fprintln(os.Stderr, snippet)
		}
		return 1
	}
	var compileErr *regex.CompileError
	if errors.As(err, &compileErr) {
		fmt.Fprintln(os.Stderr, compileErr.Error())
		return 1
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}
