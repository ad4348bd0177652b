package regex

// MatchResult is a successful match: either the content of the single
// capturing group, or the whole target string when the pattern carries no
// capture (spec §4.4).
type MatchResult struct {
	Matched bool
	Value   string
}

// Match attempts to match p against the whole of target, anchored at both
// ends (the pattern must consume exactly target's full length). Quantified
// elements backtrack with lazy semantics: the fewest repetitions are tried
// first, growing only when the remainder of the pattern fails to match the
// remainder of the string (spec §4.4).
func Match(p *Pattern, target string) MatchResult {
	runes := []rune(target)
	capStart, capEnd := -1, -1
	if !matchFrom(p.Elements, 0, runes, 0, &capStart, &capEnd) {
		return MatchResult{Matched: false}
	}
	if !p.HasCapture {
		return MatchResult{Matched: true, Value: target}
	}
	if capStart < 0 {
		// Capturing element matched zero repetitions (only possible via '@').
		return MatchResult{Matched: true, Value: ""}
	}
	return MatchResult{Matched: true, Value: string(runes[capStart:capEnd])}
}

func matchFrom(elements []Element, ei int, target []rune, pos int, capStart, capEnd *int) bool {
	if ei == len(elements) {
		return pos == len(target)
	}
	el := &elements[ei]
	if el.Optional || el.CanRepeat {
		return matchQuantified(elements, ei, target, pos, capStart, capEnd)
	}

	n := len(el.runes)
	if pos+n > len(target) {
		return false
	}
	if !matchLiteral(el.runes, target[pos:pos+n]) {
		return false
	}
	newPos := pos + n
	if el.Capturing {
		*capStart, *capEnd = pos, newPos
	}
	return matchFrom(elements, ei+1, target, newPos, capStart, capEnd)
}

func matchQuantified(elements []Element, ei int, target []rune, pos int, capStart, capEnd *int) bool {
	el := &elements[ei]
	minReps := 0
	maxReps := 1 // '@'
	if el.CanRepeat {
		minReps = 1
		maxReps = -1 // unbounded
	}

	// A zero-width element (empty group contents) can never consume more of
	// the string by repeating further; growing past one attempt would loop
	// forever without changing the outcome, so it is not attempted.
	zeroWidth := len(el.runes) == 0

	rep := minReps
	for {
		end, ok := consumeReps(el, target, pos, rep)
		if !ok {
			return false
		}
		if el.Capturing {
			if rep == 0 {
				*capStart, *capEnd = -1, -1
			} else {
				*capStart, *capEnd = pos, end
			}
		}
		if matchFrom(elements, ei+1, target, end, capStart, capEnd) {
			return true
		}
		if zeroWidth || (maxReps >= 0 && rep >= maxReps) {
			return false
		}
		rep++
	}
}

// consumeReps matches exactly reps back-to-back repetitions of el starting
// at pos, returning the position after the last repetition. Returns
// ok=false if there are not enough remaining characters or any repetition
// fails to match.
func consumeReps(el *Element, target []rune, pos, reps int) (int, bool) {
	n := len(el.runes)
	for i := 0; i < reps; i++ {
		if pos+n > len(target) {
			return 0, false
		}
		if !matchLiteral(el.runes, target[pos:pos+n]) {
			return 0, false
		}
		pos += n
	}
	return pos, true
}

func matchLiteral(pattern, target []rune) bool {
	for i, p := range pattern {
		if p != '.' && p != target[i] {
			return false
		}
	}
	return true
}
