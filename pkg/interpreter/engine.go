package interpreter

import (
	"sort"

	"sortle/interpreter-go/pkg/ast"
	"sortle/interpreter-go/pkg/runtime"
)

// State is the rewrite engine's program state: an ordered, duplicate-free
// sequence of expressions sorted strictly by name (spec §3). It is mutated
// only by ApplyResult, which Step calls.
type State struct {
	entries []ast.Expression
}

// NewState builds a State from parser output, sorting it by name first so
// the sort invariant holds from the first Step regardless of what order the
// parser collaborator happened to produce (spec §3 "Lifecycle").
func NewState(initial []ast.Expression) *State {
	entries := make([]ast.Expression, len(initial))
	copy(entries, initial)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return &State{entries: entries}
}

// Len reports the number of expressions currently in the state.
func (s *State) Len() int { return len(s.entries) }

// NameAt returns the name of the i'th entry. It satisfies regex.NameSource.
func (s *State) NameAt(i int) string { return s.entries[i].Name }

// At returns a copy of the i'th entry, for callers (the debugger, tests)
// that want to inspect the full expression rather than just its name.
func (s *State) At(i int) ast.Expression { return s.entries[i] }

// Snapshot returns a copy of the current entries, safe for a caller to hold
// across subsequent Steps.
func (s *State) Snapshot() []ast.Expression {
	out := make([]ast.Expression, len(s.entries))
	copy(out, s.entries)
	return out
}

// Step performs exactly one rewrite and returns the instruction pointer to
// use for the next Step (spec §4.6). It is the single-step entry point a
// debugging front-end drives directly; the core makes no assumption that
// Run will ever be called.
// Step requires 0 <= ip < state.Len() on entry (spec §8 invariant 4); a
// caller driving the engine (Run, or a debugger front-end) is responsible
// for that precondition, matching the spec's "at every entry to step".
func Step(state *State, ip int) (int, error) {
	result, err := Evaluate(state.entries[ip].Terms, state, ip)
	if err != nil {
		return ip, err
	}
	return ApplyResult(state, ip, result), nil
}

// ApplyResult performs the rewrite half of Step given an already-evaluated
// result: it removes the entry at ip and, unless result converts to the
// empty string (Integer 0 or an empty String), reinserts it under its new name at the sorted
// insertion point (clobbering any entry already there), then returns the
// instruction pointer to use for the next Step (spec §4.6). Splitting this
// out from Step lets a caller that has already evaluated the entry (the
// debugger, inspecting the rewrite before it happens) apply it without
// evaluating a second time.
func ApplyResult(state *State, ip int, result runtime.Value) int {
	e := state.entries[ip]
	newName := result.ToString()

	state.entries = append(state.entries[:ip], state.entries[ip+1:]...)

	if newName == "" {
		// Deleted: no reinsertion. ip stays at its post-removal index, which
		// now addresses what used to be the next entry.
		if ip == state.Len() {
			ip = 0
		}
		return ip
	}

	j := sort.Search(len(state.entries), func(i int) bool {
		return state.entries[i].Name >= newName
	})
	reinserted := e.Clone(newName)

	if j < len(state.entries) && state.entries[j].Name == newName {
		state.entries[j] = reinserted // clobber
	} else {
		state.entries = append(state.entries, ast.Expression{})
		copy(state.entries[j+1:], state.entries[j:])
		state.entries[j] = reinserted
	}

	next := j + 1
	if next == state.Len() {
		next = 0
	}
	return next
}

// Run repeatedly steps state, starting at instruction pointer 0, until
// exactly one expression remains, returning its name (spec §4.6 "run").
func Run(state *State) (string, error) {
	if state.Len() == 0 {
		return "", errEmptyProgram()
	}
	if state.Len() == 1 {
		// A one-entry program halts before it is ever stepped, even if
		// stepping it would have evaluated to a self-deleting 0 (spec §8
		// scenario 2).
		return state.entries[0].Name, nil
	}

	ip := 0
	for state.Len() > 1 {
		next, err := Step(state, ip)
		if err != nil {
			return "", err
		}
		ip = next
	}
	return state.entries[0].Name, nil
}
