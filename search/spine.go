package search

import "github.com/telepair/rlifesrc-go/rule"

// coordOrder returns the (x, y) visiting order for the board, per the
// resolved SearchOrderKind. Time is always the fast-varying inner loop: for
// each (x, y) the spine holds all P generations consecutively, so one
// position is decided at every generation before the search moves on to the
// next position.
func coordOrder(cfg Config) []Coord {
	if cfg.resolvedSearchOrder() == FromVec {
		return cfg.SearchOrder.Vec
	}

	out := make([]Coord, 0, cfg.Width*cfg.Height)
	switch cfg.resolvedSearchOrder() {
	case ColumnMajor:
		for x := 0; x < cfg.Width; x++ {
			for y := 0; y < cfg.Height; y++ {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	case Diagonal:
		// Anti-diagonal sweep: all cells with x+y == k before x+y == k+1.
		maxSum := cfg.Width + cfg.Height - 2
		for k := 0; k <= maxSum; k++ {
			for x := 0; x < cfg.Width; x++ {
				y := k - x
				if y < 0 || y >= cfg.Height {
					continue
				}
				out = append(out, Coord{X: x, Y: y})
			}
		}
	default: // RowMajor
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// frontGroup returns the row/column/diagonal index of c along the given
// (resolved) search order kind. Cells sharing the first-visited coordinate's
// frontGroup value are the "front" per spec §3's glossary entry ("Is-front:
// true for cells on the first row/column along the search-order spine").
// FromVec has no natural row/column grouping, so its front degenerates to
// the single first coordinate.
func frontGroup(kind SearchOrderKind, c Coord) int {
	switch kind {
	case ColumnMajor:
		return c.X
	case Diagonal:
		return c.X + c.Y
	case FromVec:
		return c.X*1_000_003 + c.Y
	default: // RowMajor
		return c.Y
	}
}

// buildSpine links every cell into the static unknownNext chain in search
// order, marks symmetry-redundant cells so the backtracker never branches
// on a cell whose value is already pinned by an earlier peer (spec §4.4,
// "skip cells forced by symmetry"), and marks the front (every generation
// of the first row/column/diagonal along the spine, per frontGroup).
func (w *World) buildSpine(order []Coord) {
	var head, tail cellID
	head, tail = noCell, noCell

	seen := make(map[cellID]bool, len(w.cells))
	kind := w.cfg.resolvedSearchOrder()
	frontValue, haveFront := 0, false

	link := func(id cellID) {
		if head == noCell {
			head = id
		} else {
			w.cells[tail].unknownNext = id
		}
		tail = id
	}

	for _, c := range order {
		group := frontGroup(kind, c)
		if !haveFront {
			frontValue, haveFront = group, true
		}
		isFront := group == frontValue

		for t := 0; t < w.period; t++ {
			id := w.cellIndex(c.X, c.Y, t)
			cell := &w.cells[id]
			cell.isFront = isFront

			canonical := id
			for _, p := range cell.peers {
				if p < canonical {
					canonical = p
				}
			}
			cell.spineSkip = canonical != id || seen[id]
			seen[id] = true

			link(id)
		}
	}
	if tail != noCell {
		w.cells[tail].unknownNext = noCell
	}
	w.spineHead = head
}

// firstUnknownFrom walks the static spine starting at start (inclusive),
// returning the first cell that is both not symmetry-redundant and still
// Unknown, or noCell if the spine is exhausted.
func (w *World) firstUnknownFrom(start cellID) cellID {
	for id := start; id != noCell; id = w.cells[id].unknownNext {
		cell := &w.cells[id]
		if cell.spineSkip {
			continue
		}
		if cell.state == rule.Unknown {
			return id
		}
	}
	return noCell
}
