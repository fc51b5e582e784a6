package search

import "github.com/telepair/rlifesrc-go/rule"

// setCell assigns s to an Unknown cell, recording it on the undo log and
// queuing every pair that could now be further constrained. It reports
// false without mutating anything if id is already set to a different
// value (a conflict the caller must handle).
func (w *World) setCell(id cellID, s State, r reason, via cellID) bool {
	c := &w.cells[id]
	if c.state != rule.Unknown {
		return c.state == s
	}
	c.state = s
	c.reason = r
	c.via = via
	w.setStack = append(w.setStack, id)
	w.setCount.Store(int64(len(w.setStack)))
	w.enqueuePair(id)
	return true
}

// State is an alias kept local to the search package so call sites here
// read naturally; it is exactly rule.State.
type State = rule.State

// enqueuePair schedules every pair whose Forward/Backward/ImpliedNeighbours
// result could change now that id's value is known: id's own (current,
// successor) pair, the pair ending at id (id.predecessor, id), and every
// pair rooted at a neighbour of id (id is one of that neighbour's inputs).
func (w *World) enqueuePair(id cellID) {
	w.queue = append(w.queue, id, w.cells[id].predecessor)
	w.queue = append(w.queue, w.cells[id].neighbours[:]...)
}

// checkPair re-derives every consequence of the time-transition relation
// between p and p.successor: Forward constrains the successor, Backward
// constrains p itself, and ImpliedNeighbours constrains p's still-Unknown
// neighbours, per spec §4.1/§4.3. A set p also sets its still-Unknown
// symmetry peers to its own value. It returns false and records w.conflict
// the first time a lookup yields an empty possibility set or contradicts
// an already-decided value.
func (w *World) checkPair(p cellID) bool {
	if p == noCell || p == w.sentinelID {
		return true
	}
	cell := &w.cells[p]
	if cell.state != rule.Unknown {
		for _, q := range cell.peers {
			if !w.setCell(q, cell.state, reasonDeduced, p) {
				w.conflict = q
				return false
			}
		}
	}
	succ := cell.successor
	if succ == noCell {
		return true
	}
	sc := &w.cells[succ]

	var nbs [8]rule.State
	for i, n := range cell.neighbours {
		nbs[i] = w.cells[n].state
	}

	entry := w.table.Forward(cell.state, nbs)
	if entry.PossibleSuccessor.Empty() {
		w.conflict = p
		return false
	}
	switch {
	case sc.state == rule.Unknown:
		if entry.ImpliedSuccessor != rule.Unknown {
			if !w.setCell(succ, entry.ImpliedSuccessor, reasonDeduced, p) {
				w.conflict = succ
				return false
			}
		}
	case !entry.PossibleSuccessor.Has(sc.state):
		w.conflict = succ
		return false
	}

	if sc.state == rule.Unknown {
		return true
	}

	possibleCurrent := w.table.Backward(sc.state, nbs)
	if possibleCurrent.Empty() {
		w.conflict = p
		return false
	}
	switch {
	case cell.state == rule.Unknown:
		if v, ok := possibleCurrent.Singleton(); ok {
			if !w.setCell(p, v, reasonDeduced, succ) {
				w.conflict = p
				return false
			}
		}
	case !possibleCurrent.Has(cell.state):
		w.conflict = p
		return false
	}

	if cell.state == rule.Unknown {
		return true
	}

	forced := w.table.ImpliedNeighbours(cell.state, sc.state, nbs)
	for i, f := range forced {
		if f == rule.Unknown {
			continue
		}
		nb := cell.neighbours[i]
		switch nbState := w.cells[nb].state; {
		case nbState == rule.Unknown:
			if !w.setCell(nb, f, reasonDeduced, p) {
				w.conflict = nb
				return false
			}
		case nbState != f:
			w.conflict = nb
			return false
		}
	}
	return true
}

// propagate drains the work queue, running checkPair on every scheduled
// cell until either the queue empties (the current assignment is locally
// consistent) or a contradiction is found, in which case the queue is
// dropped and w.conflict names the cell the caller should report.
func (w *World) propagate() bool {
	for len(w.queue) > 0 {
		id := w.queue[len(w.queue)-1]
		w.queue = w.queue[:len(w.queue)-1]
		if !w.checkPair(id) {
			w.queue = w.queue[:0]
			return false
		}
	}
	return true
}
