package driver

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sortle/interpreter-go/pkg/ast"
	"sortle/interpreter-go/pkg/interpreter"
)

// TraceStep captures the sorted list of names right before one rewrite step,
// plus the instruction pointer that step will act on.
type TraceStep struct {
	IP    int      `yaml:"ip"`
	Names []string `yaml:"names"`
}

// Trace is the full run history: one entry per step taken, plus the name
// the program halted on.
type Trace struct {
	Steps  []TraceStep `yaml:"steps"`
	Result string      `yaml:"result"`
}

// RunWithTrace runs state to completion with the same stepping rule as
// interpreter.Run (an empty program yields a plain error rather than an
// EmptyProgramError), and records the program's sorted name list before every step so a debugger
// front-end or a post-mortem review can walk the execution afterward
// instead of only single-stepping it live.
func RunWithTrace(state *interpreter.State) (string, *Trace, error) {
	trace := &Trace{}

	if state.Len() == 0 {
		return "", trace, fmt.Errorf("sortle: empty program has no output")
	}
	if state.Len() == 1 {
		trace.Result = state.NameAt(0)
		return trace.Result, trace, nil
	}

	ip := 0
	for state.Len() > 1 {
		trace.Steps = append(trace.Steps, TraceStep{IP: ip, Names: namesOf(state.Snapshot())})
		next, err := interpreter.Step(state, ip)
		if err != nil {
			return "", trace, err
		}
		ip = next
	}
	trace.Result = state.NameAt(0)
	return trace.Result, trace, nil
}

func namesOf(exprs []ast.Expression) []string {
	names := make([]string, len(exprs))
	for i, e := range exprs {
		names[i] = e.Name
	}
	return names
}

// WriteTrace renders a Trace as YAML, to standard output if path is empty
// else to the named file, matching the teacher interpreter's lockfile round-trip style.
func WriteTrace(trace *Trace, path string) error {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(trace); err != nil {
		return fmt.Errorf("trace: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("trace: encoder close: %w", err)
	}
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, sb.String())
		return err
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
