package search

import "github.com/telepair/rlifesrc-go/rule"

// cellID indexes the World's cell arena. -1 (noCell) marks an absent
// reference: a cell's via when nothing caused its value, the end of the
// spine, and "no conflict recorded". Neighbour, successor and predecessor
// links never hold it once New has linked the world; off-board positions
// resolve to the frozen dead sentinel cell instead.
type cellID int32

const noCell cellID = -1

// reason is why a cell holds its current non-Unknown value, per spec §3.
type reason uint8

const (
	reasonNone reason = iota
	// reasonDecided marks a branch point chosen by the backtracker.
	reasonDecided
	// reasonDecidedFlipped marks a branch point that has already been
	// flipped once; a further conflict pops past it instead of flipping
	// again.
	reasonDecidedFlipped
	// reasonDeduced marks a value forced by the propagator from another
	// cell (recorded in cell.via for undo/diagnostics).
	reasonDeduced
	// reasonKnown marks a value from the initial known_cells list or from
	// boundary/diagonal-width folding; such cells are frozen.
	reasonKnown
)

// cellRecord is one cell of the 3D space-time grid. All relational fields
// are cellIDs into World.cells, per spec §9 ("arena of cells indexed by
// integer IDs ... no reference-counted ownership").
type cellRecord struct {
	x, y, t int

	state  rule.State
	reason reason
	via    cellID
	frozen bool

	neighbours  [8]cellID
	successor   cellID
	predecessor cellID
	peers       []cellID // symmetry peers, including the cell itself

	isFront bool

	// spine linkage: unknownNext is the next cell in search order
	// regardless of whether it's currently Unknown - traversal skips
	// decided/redundant cells at read time rather than splicing the list
	// on every set/unset (see spine.go).
	unknownNext cellID
	spineSkip   bool
}
