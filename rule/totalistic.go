package rule

// outerTotalisticFunc builds a transitionFunc from B/S neighbour-count sets,
// the classic life-like rule family (e.g. B3/S23 for Conway's Life). Only
// the count of Alive neighbours matters, never their arrangement - this is
// the direct generalisation of the teacher's cellularautomaton package,
// which precomputes an 8-entry lookup table from a Wolfram rule number
// (computeRuleTable), to an N-neighbour counted rule.
func outerTotalisticFunc(born, survive [9]bool) transitionFunc {
	return func(currentAlive bool, pattern [8]bool) bool {
		count := 0
		for _, alive := range pattern {
			if alive {
				count++
			}
		}
		if currentAlive {
			return survive[count]
		}
		return born[count]
	}
}

// NewOuterTotalistic builds a table for a 2-state (or Generations, via
// states>2) outer-totalistic rule with the given birth/survival neighbour
// counts, 0..8.
func NewOuterTotalistic(born, survive [9]bool, states int, nb Neighborhood) Table {
	return newGenericTable(states, nb, outerTotalisticFunc(born, survive))
}
