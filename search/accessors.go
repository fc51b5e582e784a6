package search

import "github.com/telepair/rlifesrc-go/rule"

// Width, Height, and Period report the world's fixed dimensions.
func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }
func (w *World) Period() int { return w.period }

// Cell returns the current value of (x, y, t); Unknown if the search
// hasn't decided it yet. Out-of-range coordinates always report Dead,
// matching the world's implicit Dead boundary.
func (w *World) Cell(x, y, t int) rule.State {
	if !w.inBounds(x, y) || t < 0 || t >= w.period {
		return rule.Dead
	}
	return w.cells[w.cellIndex(x, y, t)].state
}

// DecisionDepth returns the number of branch points currently on the
// backtracker's stack, useful for progress reporting. Safe to call
// concurrently with a running Step, unlike the other accessors.
func (w *World) DecisionDepth() int { return int(w.decisionDepth.Load()) }

// SetCount returns the number of cells currently decided or deduced. Safe to
// call concurrently with a running Step, unlike the other accessors.
func (w *World) SetCount() int { return int(w.setCount.Load()) }

// LiveCount returns the number of cells at generation t that are neither
// Dead nor Unknown.
func (w *World) LiveCount(t int) int {
	if t < 0 || t >= w.period {
		return 0
	}
	n := 0
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			if s := w.cells[w.cellIndex(x, y, t)].state; s != rule.Dead && s != rule.Unknown {
				n++
			}
		}
	}
	return n
}
