package rule

// HenselCount is one neighbour-count clause of an isotropic non-totalistic
// rule string, e.g. the "2", "3-a", or "4i" parts of "B2/S23-a4i".
type HenselCount struct {
	N int
	// All is true when no letters were given - every orbit for N is
	// included.
	All bool
	// Exclude is true when the clause started with '-': letters names the
	// orbits to leave OUT of an otherwise-included count.
	Exclude bool
	Letters map[int]bool
}

type henselLetterSet struct {
	present bool
	all     bool
	exclude bool
	letters map[int]bool
}

func (s henselLetterSet) contains(idx int) bool {
	if !s.present {
		return false
	}
	if s.all {
		return true
	}
	if s.exclude {
		return !s.letters[idx]
	}
	return s.letters[idx]
}

func buildLetterSets(counts []HenselCount) [9]henselLetterSet {
	var sets [9]henselLetterSet
	for _, c := range counts {
		sets[c.N] = henselLetterSet{present: true, all: c.All, exclude: c.Exclude, letters: c.Letters}
	}
	return sets
}

// isotropicFunc builds a transitionFunc from parsed Hensel born/survive
// clauses: unlike outer-totalistic rules, which orbit a given neighbour
// count belongs to (not just its size) determines birth/survival.
func isotropicFunc(born, survive []HenselCount) transitionFunc {
	bornSets := buildLetterSets(born)
	survSets := buildLetterSets(survive)
	return func(currentAlive bool, pattern [8]bool) bool {
		var mask uint8
		n := 0
		for i, alive := range pattern {
			if alive {
				mask |= 1 << uint(i)
				n++
			}
		}
		letter := LetterIndex(n, mask)
		if currentAlive {
			return survSets[n].contains(letter)
		}
		return bornSets[n].contains(letter)
	}
}

// NewIsotropic builds a table for an isotropic non-totalistic (Hensel
// notation) rule, 2-state or Generations.
func NewIsotropic(born, survive []HenselCount, states int, nb Neighborhood) Table {
	return newGenericTable(states, nb, isotropicFunc(born, survive))
}
