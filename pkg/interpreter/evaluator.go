package interpreter

import (
	"sortle/interpreter-go/pkg/ast"
	"sortle/interpreter-go/pkg/regex"
	"sortle/interpreter-go/pkg/runtime"
)

// Evaluate executes one expression's term sequence against a fresh stack
// (spec §4.2). state and ip are borrowed read-only, needed only by the '?'
// operator to run a regex search over the other expressions' names.
func Evaluate(terms []ast.Term, state regex.NameSource, ip int) (runtime.Value, error) {
	var stack []runtime.Value
	for _, term := range terms {
		switch term.Kind {
		case ast.TermInteger:
			stack = append(stack, runtime.Integer(term.Int))
		case ast.TermString:
			stack = append(stack, runtime.String(term.Str))
		case ast.TermOperator:
			if len(stack) < 2 {
				return runtime.Value{}, errStackUnderflow(rune(term.Op))
			}
			op1 := stack[len(stack)-1]
			op2 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			result, err := applyOperator(term.Op, op1, op2, state, ip)
			if err != nil {
				return runtime.Value{}, err
			}
			stack = append(stack, result)
		}
	}
	if len(stack) != 1 {
		return runtime.Value{}, errStackResidue(len(stack))
	}
	return stack[0], nil
}

// applyOperator implements the eight operators' semantics (spec §4.2). op1
// is the first-popped (right-hand) operand; op2 is the second-popped
// (left-hand) operand — this ordering matters for the non-commutative
// operators /, %, ~ and ?.
func applyOperator(op ast.Operator, op1, op2 runtime.Value, state regex.NameSource, ip int) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		return runtime.Integer(op2.ToInteger() + op1.ToInteger()), nil
	case ast.OpMul:
		return runtime.Integer(op2.ToInteger() * op1.ToInteger()), nil
	case ast.OpDiv:
		divisor := op1.ToInteger()
		if divisor == 0 {
			return runtime.Value{}, errDivideByZero(rune(op))
		}
		return runtime.Integer(floorDiv(op2.ToInteger(), divisor)), nil
	case ast.OpMod:
		divisor := op1.ToInteger()
		if divisor == 0 {
			return runtime.Value{}, errDivideByZero(rune(op))
		}
		return runtime.Integer(op2.ToInteger() % divisor), nil
	case ast.OpMax, ast.OpMaxAlias:
		a, b := op2.ToString(), op1.ToString()
		if a >= b {
			return runtime.String(a), nil
		}
		return runtime.String(b), nil
	case ast.OpConcat:
		return runtime.String(op2.ToString() + op1.ToString()), nil
	case ast.OpMatch:
		return evalMatch(op1, op2, state, ip)
	default:
		// Unreachable: ast.IsOperator closes the set at parse time.
		return runtime.Value{}, errUnsupportedMatchForm()
	}
}

func evalMatch(op1, op2 runtime.Value, state regex.NameSource, ip int) (runtime.Value, error) {
	if op1.ToString() != "" {
		return runtime.Value{}, errUnsupportedMatchForm()
	}
	pattern := op2.ToString()
	result, err := regex.Search(pattern, state, ip)
	if err != nil {
		return runtime.Value{}, err
	}
	return runtime.String(result), nil
}

// floorDiv implements floor(a / b) for b != 0, where Go's native / truncates
// toward zero (spec §4.2 "/").
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
