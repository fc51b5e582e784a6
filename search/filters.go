package search

import "github.com/telepair/rlifesrc-go/rule"

// acceptCurrentAssignment runs the spine-exhaustion acceptance filters of
// spec §4.4/§6 against a fully-decided assignment. A false result is
// treated like a conflict: the caller backtracks and keeps searching.
func (w *World) acceptCurrentAssignment() bool {
	// front_nonempty is disabled once known_cells is set, per spec §4.5:
	// a caller-pinned assignment may legitimately have an empty front (e.g.
	// a still life placed away from it), so the optimisation would reject
	// valid solutions instead of just duplicates.
	if len(w.cfg.KnownCells) == 0 && !w.frontNonempty() {
		return false
	}
	if w.cfg.MaxCellCount > 0 {
		count := w.minLiveCount()
		if count > w.cfg.MaxCellCount {
			return false
		}
		if w.cfg.ReduceMax {
			w.cfg.MaxCellCount = count - 1
		}
	}
	if w.cfg.SkipSubperiod && w.hasSubperiod() {
		return false
	}
	if w.cfg.SkipSubsymmetry && w.hasSubsymmetry() {
		return false
	}
	return true
}

// frontNonempty checks that the first row/column/diagonal along the search
// order spine (cell.isFront, set by buildSpine) has at least one live cell,
// per spec §4.5. This is what actually breaks translational duplicates
// along the spine direction, not just the fully-empty solution.
func (w *World) frontNonempty() bool {
	for i := range w.cells {
		c := &w.cells[i]
		if c.isFront && c.state == rule.Alive {
			return true
		}
	}
	return false
}

// minLiveCount returns the minimum live-cell count over every generation,
// the quantity max_cell_count bounds per spec §4.5: for a translating
// pattern the count can vary generation to generation, so the bound must
// hold for the generation where the pattern is smallest, not generation 0
// specifically.
func (w *World) minLiveCount() int {
	min := w.LiveCount(0)
	for t := 1; t < w.period; t++ {
		if c := w.LiveCount(t); c < min {
			min = c
		}
	}
	return min
}

// hasSubperiod reports whether the assignment is already periodic with a
// period properly dividing the configured one, which skip_subperiod
// rejects as redundant with a shorter search. This compares raw cell
// values only; it does not also retry the world's transformation/
// translation over the shorter period, which a stricter check would need.
func (w *World) hasSubperiod() bool {
	for d := 1; d < w.period; d++ {
		if w.period%d != 0 {
			continue
		}
		if w.matchesPeriod(d) {
			return true
		}
	}
	return false
}

func (w *World) matchesPeriod(d int) bool {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			for t := 0; t < w.period; t++ {
				a := w.cells[w.cellIndex(x, y, t)].state
				b := w.cells[w.cellIndex(x, y, (t+d)%w.period)].state
				if a != b {
					return false
				}
			}
		}
	}
	return true
}

// hasSubsymmetry reports whether the assignment is invariant under a
// transformation outside the configured symmetry group, which
// skip_subsymmetry rejects as redundant with a more symmetric search.
func (w *World) hasSubsymmetry() bool {
	current := map[Transformation]bool{}
	for _, e := range w.cfg.Symmetry.Elements() {
		current[e] = true
	}
	for _, g := range D8.Elements() {
		if current[g] {
			continue
		}
		if g.ChangesAxes() && w.width != w.height {
			continue
		}
		if w.matchesTransformation(g) {
			return true
		}
	}
	return false
}

func (w *World) matchesTransformation(g Transformation) bool {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			gx, gy := g.apply(x, y, w.width, w.height)
			for t := 0; t < w.period; t++ {
				a := w.cells[w.cellIndex(x, y, t)].state
				b := w.cells[w.cellIndex(gx, gy, t)].state
				if a != b {
					return false
				}
			}
		}
	}
	return true
}
