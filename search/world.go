package search

import (
	"sync/atomic"

	"github.com/telepair/rlifesrc-go/rule"
)

// World is one constructed search problem: a fixed-size arena of cells
// wired into the time/neighbour/symmetry graph described by a Config, plus
// the mutable state the propagator and backtracker need to run Step.
type World struct {
	cfg Config

	width, height, period int
	table                 rule.Table

	cells      []cellRecord
	spineHead  cellID
	sentinelID cellID

	// setStack is the undo log of every cell ever decided/deduced, in the
	// order it happened, per spec §4.3 ("undo log of set operations").
	setStack []cellID

	// decisions is the stack of branch points; each entry's SetStackPos is
	// an index into setStack to truncate back to on backtrack.
	decisions []decisionRecord

	queue []cellID // propagation work queue, reused across calls to avoid churn

	status   Status
	rng      *rng
	conflict cellID // set by propagate on contradiction, cleared otherwise

	// decisionDepth and setCount mirror len(decisions)/len(setStack) through
	// an atomic so a concurrently running profiling sampler (see pkg.Sampler)
	// can read search progress without racing the backtracker's goroutine.
	decisionDepth atomic.Int64
	setCount      atomic.Int64
}

// New builds a World from a Config, per spec §6/§7. All returned errors are
// *ConfigError.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := rule.Parse(cfg.Rule)
	if err != nil {
		return nil, &ConfigError{Reason: "invalid rule", Cause: err}
	}

	w := &World{
		cfg:    cfg,
		width:  cfg.Width,
		height: cfg.Height,
		period: cfg.Period,
		table:  table,
		rng:    newRNG(cfg.RandomSeed),
	}

	w.cells = make([]cellRecord, w.width*w.height*w.period+1)
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			for t := 0; t < w.period; t++ {
				id := w.cellIndex(x, y, t)
				w.cells[id] = cellRecord{
					x: x, y: y, t: t,
					state:       rule.Unknown,
					via:         noCell,
					predecessor: noCell,
					successor:   noCell,
					// isFront is set by buildSpine once the search order
					// (and so the spine's first row/column/diagonal) is known.
				}
			}
		}
	}

	// The frozen dead sentinel lives one slot past the real board, shared
	// by every out-of-board neighbour/time reference.
	w.sentinelID = cellID(w.width * w.height * w.period)
	w.cells[w.sentinelID] = cellRecord{
		x: -1, y: -1, t: -1,
		state:       rule.Dead,
		reason:      reasonKnown,
		frozen:      true,
		via:         noCell,
		predecessor: noCell,
		successor:   noCell,
	}
	w.cells[w.sentinelID].neighbours = [8]cellID{
		w.sentinelID, w.sentinelID, w.sentinelID, w.sentinelID,
		w.sentinelID, w.sentinelID, w.sentinelID, w.sentinelID,
	}
	w.cells[w.sentinelID].successor = w.sentinelID
	w.cells[w.sentinelID].predecessor = w.sentinelID
	w.cells[w.sentinelID].peers = []cellID{w.sentinelID}

	w.linkNeighbours()
	w.linkTime()
	w.linkPeers()
	w.freezeDiagonal()

	if err := w.applyKnownCells(); err != nil {
		return nil, err
	}

	for id := range w.cells {
		if w.cells[id].frozen {
			w.enqueuePair(cellID(id))
		}
	}
	if !w.propagate() {
		return nil, &ConfigError{Reason: "known cells / diagonal_width boundary is self-contradictory"}
	}

	w.buildSpine(coordOrder(cfg))

	return w, nil
}

// cellIndex maps a board coordinate to its arena index. Callers must only
// pass in-bounds coordinates; out-of-board neighbour lookups go through
// neighbourAt, which returns the frozen dead sentinel instead.
func (w *World) cellIndex(x, y, t int) cellID {
	return cellID((y*w.width+x)*w.period + t)
}

func (w *World) inBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// neighbourAt resolves a board-relative neighbour coordinate to a cellID,
// falling back to the shared frozen-dead sentinel for positions outside the
// board (spec §4.2: "cells outside the world are Dead").
func (w *World) neighbourAt(x, y, t int) cellID {
	if !w.inBounds(x, y) {
		return w.deadSentinel()
	}
	return w.cellIndex(x, y, t)
}

// deadSentinel returns the id of the single frozen Dead cell shared by
// every out-of-board neighbour/time reference.
func (w *World) deadSentinel() cellID { return w.sentinelID }

func (w *World) linkNeighbours() {
	offsets, _ := w.table.Neighborhood().Offsets()
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			for t := 0; t < w.period; t++ {
				id := w.cellIndex(x, y, t)
				for i, off := range offsets {
					w.cells[id].neighbours[i] = w.neighbourAt(x+off.DX, y+off.DY, t)
				}
			}
		}
	}
}

// successorCoord computes where (x, y, t) maps to one tick later, applying
// the world's transformation and translation only on the period wrap, per
// spec §3 ("evolving P ticks equals tau followed by translating by
// (dx, dy)").
func (w *World) successorCoord(x, y, t int) (nx, ny, nt int) {
	nt = t + 1
	if nt != w.period {
		return x, y, nt
	}
	nt = 0
	nx, ny = w.cfg.Transformation.apply(x, y, w.width, w.height)
	nx += w.cfg.DX
	ny += w.cfg.DY
	return nx, ny, nt
}

// predecessorCoord is the inverse of successorCoord.
func (w *World) predecessorCoord(x, y, t int) (px, py, pt int) {
	pt = t - 1
	if pt >= 0 {
		return x, y, pt
	}
	pt = w.period - 1
	ux, uy := x-w.cfg.DX, y-w.cfg.DY
	px, py = w.cfg.Transformation.inverse().apply(ux, uy, w.width, w.height)
	return px, py, pt
}

func (w *World) linkTime() {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			for t := 0; t < w.period; t++ {
				id := w.cellIndex(x, y, t)

				sx, sy, st := w.successorCoord(x, y, t)
				w.cells[id].successor = w.neighbourAt(sx, sy, st)

				px, py, pt := w.predecessorCoord(x, y, t)
				w.cells[id].predecessor = w.neighbourAt(px, py, pt)
			}
		}
	}
}

func (w *World) linkPeers() {
	elems := w.cfg.Symmetry.Elements()
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			for t := 0; t < w.period; t++ {
				id := w.cellIndex(x, y, t)
				peers := make([]cellID, 0, len(elems))
				seen := map[cellID]bool{}
				for _, g := range elems {
					gx, gy := g.apply(x, y, w.width, w.height)
					pid := w.cellIndex(gx, gy, t)
					if !seen[pid] {
						seen[pid] = true
						peers = append(peers, pid)
					}
				}
				w.cells[id].peers = peers
			}
		}
	}
}

// freezeDiagonal pins every cell beyond diagonal_width of the main diagonal
// to Dead, per spec §4.2.
func (w *World) freezeDiagonal() {
	if w.cfg.DiagonalWidth <= 0 {
		return
	}
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			d := x - y
			if d < 0 {
				d = -d
			}
			if d < w.cfg.DiagonalWidth {
				continue
			}
			for t := 0; t < w.period; t++ {
				w.forceFrozen(w.cellIndex(x, y, t), rule.Dead)
			}
		}
	}
}

func (w *World) forceFrozen(id cellID, s rule.State) {
	c := &w.cells[id]
	c.state = s
	c.reason = reasonKnown
	c.frozen = true
}

func (w *World) applyKnownCells() error {
	for _, kc := range w.cfg.KnownCells {
		id := w.cellIndex(kc.X, kc.Y, kc.T)
		if w.cells[id].frozen && w.cells[id].state != kc.State {
			return &ConfigError{Reason: "known_cell conflicts with diagonal_width boundary"}
		}
		w.forceFrozen(id, kc.State)
	}
	return nil
}

// Status reports the backtracker's current state machine value.
func (w *World) Status() Status { return w.status }
