package interpreter

import (
	"testing"

	"sortle/interpreter-go/pkg/ast"
)

type fakeState struct{ names []string }

func (f fakeState) Len() int            { return len(f.names) }
func (f fakeState) NameAt(i int) string { return f.names[i] }

func TestEvaluateArithmetic(t *testing.T) {
	terms := []ast.Term{ast.NewIntTerm(1), ast.NewIntTerm(2), ast.NewOperatorTerm(ast.OpAdd)}
	result, err := Evaluate(terms, fakeState{}, 0)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.ToString() != "3" {
		t.Fatalf("got %q, want \"3\"", result.ToString())
	}
}

func TestEvaluateOperandOrderMattersForDivision(t *testing.T) {
	// 10 3 / -> op1=3 (last pushed), op2=10 (first pushed) -> floor(10/3) = 3
	terms := []ast.Term{ast.NewIntTerm(10), ast.NewIntTerm(3), ast.NewOperatorTerm(ast.OpDiv)}
	result, err := Evaluate(terms, fakeState{}, 0)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Fatalf("got %d, want 3", result.ToInteger())
	}
}

func TestEvaluateFloorDivisionNegative(t *testing.T) {
	// -7 2 / -> floor(-7/2) = -4
	terms := []ast.Term{ast.NewIntTerm(-7), ast.NewIntTerm(2), ast.NewOperatorTerm(ast.OpDiv)}
	result, err := Evaluate(terms, fakeState{}, 0)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.ToInteger() != -4 {
		t.Fatalf("got %d, want -4", result.ToInteger())
	}
}

func TestEvaluateDivideByZero(t *testing.T) {
	terms := []ast.Term{ast.NewIntTerm(1), ast.NewIntTerm(0), ast.NewOperatorTerm(ast.OpDiv)}
	if _, err := Evaluate(terms, fakeState{}, 0); err == nil {
		t.Fatalf("expected divide-by-zero error")
	}
}

func TestEvaluateStackUnderflow(t *testing.T) {
	terms := []ast.Term{ast.NewIntTerm(1), ast.NewOperatorTerm(ast.OpAdd)}
	if _, err := Evaluate(terms, fakeState{}, 0); err == nil {
		t.Fatalf("expected stack underflow error")
	}
}

func TestEvaluateStackResidue(t *testing.T) {
	terms := []ast.Term{ast.NewIntTerm(1), ast.NewIntTerm(2)}
	if _, err := Evaluate(terms, fakeState{}, 0); err == nil {
		t.Fatalf("expected stack residue error")
	}
}

func TestEvaluateConcat(t *testing.T) {
	terms := []ast.Term{ast.NewStringTerm("foo"), ast.NewStringTerm("bar"), ast.NewOperatorTerm(ast.OpConcat)}
	result, err := Evaluate(terms, fakeState{}, 0)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.ToString() != "foobar" {
		t.Fatalf("got %q, want \"foobar\"", result.ToString())
	}
}

func TestEvaluateLexicographicMax(t *testing.T) {
	terms := []ast.Term{ast.NewStringTerm("apple"), ast.NewStringTerm("banana"), ast.NewOperatorTerm(ast.OpMax)}
	result, err := Evaluate(terms, fakeState{}, 0)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.ToString() != "banana" {
		t.Fatalf("got %q, want \"banana\"", result.ToString())
	}
}

func TestEvaluateMatchAgainstOtherNames(t *testing.T) {
	state := fakeState{names: []string{"aa", "bb", "cc"}}
	terms := []ast.Term{ast.NewStringTerm("bb"), ast.NewIntTerm(0), ast.NewOperatorTerm(ast.OpMatch)}
	// ip=0 evaluating "aa": candidates are [] front, then reversed back half (cc, bb).
	result, err := Evaluate(terms, state, 0)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.ToString() != "bb" {
		t.Fatalf("got %q, want \"bb\"", result.ToString())
	}
}

func TestEvaluateMatchSubstringFormIsUnsupported(t *testing.T) {
	state := fakeState{names: []string{"aa"}}
	terms := []ast.Term{ast.NewStringTerm("a"), ast.NewIntTerm(1), ast.NewOperatorTerm(ast.OpMatch)}
	if _, err := Evaluate(terms, state, 0); err == nil {
		t.Fatalf("expected unsupported-operation error for non-empty op1")
	}
}
