package debugger

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"sortle/interpreter-go/pkg/ast"
	"sortle/interpreter-go/pkg/interpreter"
)

// StepDiff describes what one rewrite step changed: the instruction pointer
// it ran at, the name that was rewritten away, the name it became (empty
// if the entry was deleted), and a line-level diff of the sorted name list
// before and after, for rendering in a debugger front-end.
type StepDiff struct {
	IP         int
	BeforeName string
	AfterName  string
	Deleted    bool
	NameDiff   string
}

// Stepper wraps a *interpreter.State with an instruction pointer, letting a
// caller single-step a program and inspect what each step did without
// re-deriving the rewrite rules itself.
type Stepper struct {
	state *interpreter.State
	ip    int
	done  bool
}

// NewStepper starts a debugging session over the given expressions.
func NewStepper(initial []ast.Expression) *Stepper {
	state := interpreter.NewState(initial)
	return &Stepper{state: state, ip: 0, done: state.Len() <= 1}
}

// Done reports whether the program has reached its single remaining
// expression (or started with none or one, in which case it never steps).
func (s *Stepper) Done() bool { return s.done }

// Result returns the final expression's name. It is only meaningful once
// Done reports true.
func (s *Stepper) Result() (string, error) {
	if !s.done {
		return "", fmt.Errorf("debugger: program has not finished running")
	}
	if s.state.Len() == 0 {
		return "", fmt.Errorf("sortle: empty program has no output")
	}
	return s.state.NameAt(0), nil
}

// Snapshot returns the current sorted name list.
func (s *Stepper) Snapshot() []string {
	exprs := s.state.Snapshot()
	names := make([]string, len(exprs))
	for i, e := range exprs {
		names[i] = e.Name
	}
	return names
}

// Step advances the program by exactly one rewrite, returning a diff a
// front-end can render. Calling Step after Done reports true is an error:
// the caller is expected to check Done first, matching the rewrite engine's
// own precondition that ip is only meaningful while more than one
// expression remains.
func (s *Stepper) Step() (StepDiff, error) {
	if s.done {
		return StepDiff{}, fmt.Errorf("debugger: program has already finished")
	}

	before := s.Snapshot()
	beforeName := s.state.NameAt(s.ip)
	entry := s.state.At(s.ip)

	result, err := interpreter.Evaluate(entry.Terms, s.state, s.ip)
	if err != nil {
		return StepDiff{}, err
	}
	newName := result.ToString()

	next := interpreter.ApplyResult(s.state, s.ip, result)

	after := s.Snapshot()
	diff := StepDiff{
		IP:         s.ip,
		BeforeName: beforeName,
		AfterName:  newName,
		Deleted:    newName == "",
		NameDiff:   diffNames(before, after),
	}

	s.ip = next
	s.done = s.state.Len() <= 1
	return diff, nil
}

// diffNames renders a line-level diff of the name lists using the same
// diff/match/patch algorithm a text-editing tool would use to highlight
// what changed between two versions of a file.
func diffNames(before, after []string) string {
	dmp := diffmatchpatch.New()
	a := strings.Join(before, "\n")
	b := strings.Join(after, "\n")
	aChars, bChars, lineArray := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(aChars, bChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	return dmp.DiffPrettyText(diffs)
}
