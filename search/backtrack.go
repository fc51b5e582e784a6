package search

import "github.com/telepair/rlifesrc-go/rule"

// decisionRecord is one branch point on the backtracker's stack.
type decisionRecord struct {
	cell        cellID
	setStackPos int // setStack length before this decision's own set
	first       rule.State
	flipped     bool
}

// chooseValue picks the initial guess for an Unknown cell about to be
// branched on, per Config.Choose. ChooseSmart is deliberately simple -
// random on the front (the spine's first row/column/diagonal, at every
// generation), Dead-first in the body - and has not
// been tuned against any particular rule family; a more informed heuristic
// (e.g. weighting by live-neighbour count) is a plausible future
// improvement.
func (w *World) chooseValue(id cellID) rule.State {
	switch w.cfg.Choose {
	case ChooseAlive:
		return rule.Alive
	case ChooseRandom:
		if w.rng.Bool() {
			return rule.Alive
		}
		return rule.Dead
	case ChooseSmart:
		if w.cells[id].isFront && w.rng.Bool() {
			return rule.Alive
		}
		return rule.Dead
	default:
		return rule.Dead
	}
}

// decide branches on id: assigns it chooseValue's guess, logs a
// decisionRecord, and propagates the consequences.
func (w *World) decide(id cellID) bool {
	v := w.chooseValue(id)
	w.decisions = append(w.decisions, decisionRecord{
		cell:        id,
		setStackPos: len(w.setStack),
		first:       v,
	})
	w.decisionDepth.Store(int64(len(w.decisions)))
	w.setCell(id, v, reasonDecided, noCell)
	return w.propagate()
}

// undoTo pops the undo log back to pos, resetting every popped cell to
// Unknown.
func (w *World) undoTo(pos int) {
	for len(w.setStack) > pos {
		id := w.setStack[len(w.setStack)-1]
		w.setStack = w.setStack[:len(w.setStack)-1]
		c := &w.cells[id]
		c.state = rule.Unknown
		c.reason = reasonNone
		c.via = noCell
	}
	w.setCount.Store(int64(len(w.setStack)))
}

// responsibleDecision walks a conflicted cell's via chain back to the
// decision that ultimately forced it, for backjumping.
func (w *World) responsibleDecision(id cellID) cellID {
	seen := map[cellID]bool{}
	for id != noCell && !seen[id] {
		seen[id] = true
		c := &w.cells[id]
		if c.reason == reasonDecided || c.reason == reasonDecidedFlipped {
			return id
		}
		if c.via == noCell {
			return noCell
		}
		id = c.via
	}
	return noCell
}

// backtrack unwinds the decision stack, flipping the first decision it
// finds that hasn't tried both values yet, and reports whether a
// consistent assignment resulted. It returns false once the decision stack
// is exhausted, meaning the search space is closed out.
//
// When useBackjump is set and Config.Backjump allows it (see
// backjumpEnabled), decisions that the current conflict's via chain never
// passes through are dropped without trying their flip, jumping straight
// to the decision actually responsible for the contradiction.
func (w *World) backtrack(useBackjump bool) bool {
	var target cellID = noCell
	if useBackjump && w.backjumpEnabled() && w.conflict != noCell {
		target = w.responsibleDecision(w.conflict)
	}
	w.conflict = noCell

	for len(w.decisions) > 0 {
		dr := &w.decisions[len(w.decisions)-1]
		w.undoTo(dr.setStackPos)

		if target != noCell && dr.cell != target && !dr.flipped {
			w.decisions = w.decisions[:len(w.decisions)-1]
			w.decisionDepth.Store(int64(len(w.decisions)))
			continue
		}

		if dr.flipped {
			w.decisions = w.decisions[:len(w.decisions)-1]
			w.decisionDepth.Store(int64(len(w.decisions)))
			continue
		}

		dr.flipped = true
		opposite := rule.Alive
		if dr.first == rule.Alive {
			opposite = rule.Dead
		}
		w.setCell(dr.cell, opposite, reasonDecidedFlipped, noCell)
		if w.propagate() {
			return true
		}
		w.undoTo(dr.setStackPos)
		target = noCell // the backjump target also failed; fall back to chronological unwinding
	}
	return false
}

// backjumpEnabled reports whether non-chronological backtracking is both
// requested and safe. It is gated off for Generations rules, whose Dying
// stages deduce deterministically through via chains that don't localize
// to a single responsible decision, and whenever max_cell_count is set,
// since the live-cell count is a global property no single decision owns.
func (w *World) backjumpEnabled() bool {
	return w.cfg.Backjump && !w.table.IsGenerations() && w.cfg.MaxCellCount == 0
}

// Step advances the search by up to maxConflicts backtracking steps (0
// meaning unlimited) and returns the resulting Status, per spec §4.4. A
// Found result may be followed by another Step call to resume searching
// for a different solution.
func (w *World) Step(maxConflicts int) Status {
	if w.status == None {
		return None
	}
	if w.status == Found {
		if !w.backtrack(false) {
			w.status = None
			return None
		}
	}

	conflicts := 0
	for {
		if maxConflicts > 0 && conflicts >= maxConflicts {
			w.status = Searching
			return Searching
		}

		id := w.firstUnknownFrom(w.spineHead)
		if id == noCell {
			if w.acceptCurrentAssignment() {
				w.status = Found
				return Found
			}
			conflicts++
			if !w.backtrack(false) {
				w.status = None
				return None
			}
			continue
		}

		w.conflict = noCell
		if w.decide(id) {
			continue
		}
		conflicts++
		if !w.backtrack(true) {
			w.status = None
			return None
		}
	}
}
