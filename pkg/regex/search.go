package regex

// NameSource is the minimal read-only view the search loop needs over the
// program state: its length and the name at a given index. The rewrite
// engine's program state satisfies this directly.
type NameSource interface {
	Len() int
	NameAt(i int) string
}

// Candidates builds the search order for the '?' operator from the current
// instruction pointer (spec §4.5): the entries before ip, reversed, then the
// entries after ip, reversed. The evaluating expression at ip itself is
// excluded.
func Candidates(state NameSource, ip int) []string {
	n := state.Len()
	out := make([]string, 0, n)
	for i := ip - 1; i >= 0; i-- {
		out = append(out, state.NameAt(i))
	}
	for i := n - 1; i > ip; i-- {
		out = append(out, state.NameAt(i))
	}
	return out
}

// Search compiles pattern once and tries it against each candidate name in
// order, returning the first successful match's value. If none match, the
// empty string is returned (spec §4.5).
func Search(pattern string, state NameSource, ip int) (string, error) {
	compiled, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	for _, candidate := range Candidates(state, ip) {
		if result := Match(compiled, candidate); result.Matched {
			return result.Value, nil
		}
	}
	return "", nil
}
