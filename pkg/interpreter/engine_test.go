package interpreter

import (
	"testing"

	"sortle/interpreter-go/pkg/ast"
)

func expr(name string, terms ...ast.Term) ast.Expression {
	return ast.Expression{Name: name, Terms: terms}
}

func TestRunSingleArithmeticEntryIsNotRenamed(t *testing.T) {
	// a := 1 2 + would rename to "3" if stepped, but a one-entry program
	// halts before its first step, so the output is "a".
	state := NewState([]ast.Expression{
		expr("a", ast.NewIntTerm(1), ast.NewIntTerm(2), ast.NewOperatorTerm(ast.OpAdd)),
	})
	name, err := Run(state)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if name != "a" {
		t.Fatalf("a single-entry program halts immediately: got %q, want \"a\"", name)
	}
}

func TestRunSingleEntryHaltsBeforeSelfDeletion(t *testing.T) {
	// a := 0 would delete itself if stepped, but a one-entry program halts
	// before stepping (spec §8 scenario 2).
	state := NewState([]ast.Expression{
		expr("a", ast.NewIntTerm(0)),
	})
	name, err := Run(state)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if name != "a" {
		t.Fatalf("got %q, want \"a\"", name)
	}
}

func TestRunEmptyProgramIsError(t *testing.T) {
	state := NewState(nil)
	if _, err := Run(state); err == nil {
		t.Fatalf("expected EmptyProgramError")
	}
}

func TestStepDeletesOnEmptyName(t *testing.T) {
	state := NewState([]ast.Expression{
		expr("a", ast.NewIntTerm(0)),
		expr("b", ast.NewStringTerm("b")),
	})
	next, err := Step(state, 0)
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if state.Len() != 1 || state.NameAt(0) != "b" {
		t.Fatalf("expected a to be deleted, got %#v", state.Snapshot())
	}
	if next != 0 {
		t.Fatalf("ip should stay at 0, which now addresses b, got %d", next)
	}
}

func TestStepClobbersSameName(t *testing.T) {
	state := NewState([]ast.Expression{
		expr("a", ast.NewStringTerm("bb")),
		expr("bb", ast.NewStringTerm("keep-me")),
	})
	_, err := Step(state, 0)
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if state.Len() != 1 {
		t.Fatalf("expected clobber to leave exactly one entry, got %#v", state.Snapshot())
	}
	if state.NameAt(0) != "bb" {
		t.Fatalf("expected surviving entry named \"bb\", got %#v", state.Snapshot())
	}
}

func TestStepPreservesSortInvariant(t *testing.T) {
	state := NewState([]ast.Expression{
		expr("a", ast.NewStringTerm("z")),
		expr("m", ast.NewStringTerm("m")),
		expr("z", ast.NewStringTerm("a")),
	})
	ip := 0
	for i := 0; i < 6 && state.Len() > 1; i++ {
		var err error
		ip, err = Step(state, ip)
		if err != nil {
			t.Fatalf("Step returned error: %v", err)
		}
		names := state.Snapshot()
		for i := 1; i < len(names); i++ {
			if names[i-1].Name >= names[i].Name {
				t.Fatalf("sort invariant violated: %#v", names)
			}
		}
	}
}

func TestStepInsertionAndClobberViaSearch(t *testing.T) {
	// a := "bb" ? with another entry named "bb": matches and clobbers it.
	state := NewState([]ast.Expression{
		expr("a", ast.NewStringTerm("bb"), ast.NewIntTerm(0), ast.NewOperatorTerm(ast.OpMatch)),
		expr("bb", ast.NewStringTerm("original")),
	})
	_, err := Step(state, 0)
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if state.Len() != 1 || state.NameAt(0) != "bb" {
		t.Fatalf("expected clobber down to one \"bb\" entry, got %#v", state.Snapshot())
	}
}
