package rule

// Neighborhood identifies which of the 8 Moore slots a rule family actually
// consults. Hexagonal and von Neumann rules are emulated inside the Moore
// neighbourhood by permanently disabling the slots that don't apply to them
// (the disabled slots are forced to a fixed absent/dead value and never
// enter the descriptor), per spec §4.1/§9.
type Neighborhood int

const (
	// Moore is the full 8-neighbour square neighbourhood.
	Moore Neighborhood = iota
	// Hex emulates a 6-neighbour hexagonal grid inside the Moore square by
	// disabling the NE and SW slots.
	Hex
	// VonNeumann emulates the 4-neighbour diamond grid inside the Moore
	// square by disabling the four diagonal slots.
	VonNeumann
)

func (n Neighborhood) String() string {
	switch n {
	case Hex:
		return "hex"
	case VonNeumann:
		return "von-neumann"
	default:
		return "moore"
	}
}

// Offset is a relative (dx, dy) displacement to a neighbour cell.
type Offset struct{ DX, DY int }

// mooreOffsets lists the 8 Moore neighbours in clockwise order starting at
// North: N, NE, E, SE, S, SW, W, NW. This ordering is the canonical bit
// order used throughout the package (bit 0 = N, ... bit 7 = NW).
var mooreOffsets = [8]Offset{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// hexDisabled and vonNeumannDisabled mark the Moore slot indices that are
// forced to a fixed absent value for the Hex and VonNeumann emulations.
var (
	hexDisabled        = [8]bool{false, true, false, false, false, true, false, false}
	vonNeumannDisabled = [8]bool{false, true, false, true, false, true, false, true}
)

// Offsets returns the 8 Moore offsets together with a per-slot "active" mask
// for this neighbourhood. Disabled slots still occupy their Moore index (so
// descriptor bit positions stay stable across families) but are always Dead
// and never contribute to the live/unknown counts.
func (n Neighborhood) Offsets() ([8]Offset, [8]bool) {
	switch n {
	case Hex:
		active := [8]bool{}
		for i, d := range hexDisabled {
			active[i] = !d
		}
		return mooreOffsets, active
	case VonNeumann:
		active := [8]bool{}
		for i, d := range vonNeumannDisabled {
			active[i] = !d
		}
		return mooreOffsets, active
	default:
		return mooreOffsets, [8]bool{true, true, true, true, true, true, true, true}
	}
}

// Size returns the number of active neighbour slots (8, 6, or 4).
func (n Neighborhood) Size() int {
	_, active := n.Offsets()
	count := 0
	for _, a := range active {
		if a {
			count++
		}
	}
	return count
}
