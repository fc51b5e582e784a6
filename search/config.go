// Package search implements the constraint-propagation and depth-first
// backtracking engine that decides whether a periodic pattern exists for a
// given cellular automaton rule, translation, transformation, and symmetry,
// and enumerates such patterns.
package search

import (
	"gopkg.in/yaml.v3"

	"github.com/telepair/rlifesrc-go/rule"
)

// Transformation is one of the 8 elements of the dihedral group of order 8
// applied to the world once per period wrap (spec §3/§6: "evolving P ticks
// equals τ followed by translating by (dx,dy)").
type Transformation int

const (
	Identity Transformation = iota
	Rotate90
	Rotate180
	Rotate270
	FlipVertical     // F|  - mirror across the vertical axis
	FlipHorizontal   // F-  - mirror across the horizontal axis
	FlipDiagonal     // F\  - mirror across the main diagonal
	FlipAntiDiagonal // F/  - mirror across the anti-diagonal
)

func (t Transformation) String() string {
	switch t {
	case Rotate90:
		return "R90"
	case Rotate180:
		return "R180"
	case Rotate270:
		return "R270"
	case FlipVertical:
		return "F|"
	case FlipHorizontal:
		return "F-"
	case FlipDiagonal:
		return `F\`
	case FlipAntiDiagonal:
		return "F/"
	default:
		return "Id"
	}
}

// ChangesAxes reports whether t swaps width and height, which per spec
// §4.2 requires W == H.
func (t Transformation) ChangesAxes() bool {
	switch t {
	case Rotate90, Rotate270, FlipDiagonal, FlipAntiDiagonal:
		return true
	default:
		return false
	}
}

// apply maps a coordinate through t within a w x h board.
func (t Transformation) apply(x, y, w, h int) (int, int) {
	switch t {
	case Rotate90:
		return h - 1 - y, x
	case Rotate180:
		return w - 1 - x, h - 1 - y
	case Rotate270:
		return y, w - 1 - x
	case FlipVertical:
		return w - 1 - x, y
	case FlipHorizontal:
		return x, h - 1 - y
	case FlipDiagonal:
		return y, x
	case FlipAntiDiagonal:
		return h - 1 - y, w - 1 - x
	default:
		return x, y
	}
}

// Symmetry is a named subgroup of the dihedral group of order 8 that every
// generation of the pattern must be invariant under.
type Symmetry int

const (
	C1 Symmetry = iota
	C2
	C4
	D2Vertical   // D2|
	D2Horizontal // D2-
	D2Diagonal   // D2\
	D2AntiDiag   // D2/
	D4Plus       // D4+ - horizontal and vertical mirrors
	D4X          // D4x - both diagonal mirrors
	D8
)

func (s Symmetry) String() string {
	switch s {
	case C2:
		return "C2"
	case C4:
		return "C4"
	case D2Vertical:
		return "D2|"
	case D2Horizontal:
		return "D2-"
	case D2Diagonal:
		return `D2\`
	case D2AntiDiag:
		return "D2/"
	case D4Plus:
		return "D4+"
	case D4X:
		return "D4x"
	case D8:
		return "D8"
	default:
		return "C1"
	}
}

// Elements returns the group elements (including Identity) that make up
// this symmetry subgroup.
func (s Symmetry) Elements() []Transformation {
	switch s {
	case C2:
		return []Transformation{Identity, Rotate180}
	case C4:
		return []Transformation{Identity, Rotate90, Rotate180, Rotate270}
	case D2Vertical:
		return []Transformation{Identity, FlipVertical}
	case D2Horizontal:
		return []Transformation{Identity, FlipHorizontal}
	case D2Diagonal:
		return []Transformation{Identity, FlipDiagonal}
	case D2AntiDiag:
		return []Transformation{Identity, FlipAntiDiagonal}
	case D4Plus:
		return []Transformation{Identity, Rotate180, FlipVertical, FlipHorizontal}
	case D4X:
		return []Transformation{Identity, Rotate180, FlipDiagonal, FlipAntiDiagonal}
	case D8:
		return []Transformation{
			Identity, Rotate90, Rotate180, Rotate270,
			FlipVertical, FlipHorizontal, FlipDiagonal, FlipAntiDiagonal,
		}
	default:
		return []Transformation{Identity}
	}
}

// ChangesAxes reports whether any element of s swaps width and height.
func (s Symmetry) ChangesAxes() bool {
	for _, t := range s.Elements() {
		if t.ChangesAxes() {
			return true
		}
	}
	return false
}

// RequiresNoDiagonal reports whether s is incompatible with a nonzero
// diagonal_width, per spec §4.2 ("some require d = 0").
func (s Symmetry) RequiresNoDiagonal() bool {
	switch s {
	case D2Diagonal, D2AntiDiag, D4X, D8, C4:
		return true
	default:
		return false
	}
}

// SearchOrderKind selects how the unknown-cell spine is laid out.
type SearchOrderKind int

const (
	Automatic SearchOrderKind = iota
	RowMajor
	ColumnMajor
	Diagonal
	FromVec
)

// Coord is a single (x, y) board position, used by SearchOrder.Vec.
type Coord struct{ X, Y int }

// SearchOrder selects the spine layout; Vec is only consulted when Kind is
// FromVec.
type SearchOrder struct {
	Kind SearchOrderKind
	Vec  []Coord
}

// Choose selects how the backtracker picks an unknown cell's initial value.
type Choose int

const (
	ChooseDead Choose = iota
	ChooseAlive
	ChooseRandom
	ChooseSmart
)

// KnownCell pins a single cell to a fixed state before search begins.
type KnownCell struct {
	X, Y, T int
	State   rule.State
}

// Config fully describes a search problem, per spec §6.
type Config struct {
	Width, Height int
	Period        int
	DX, DY        int

	Transformation Transformation
	Symmetry       Symmetry
	Rule           string

	DiagonalWidth int
	MaxCellCount  int

	SearchOrder SearchOrder
	Choose      Choose
	RandomSeed  int64

	ReduceMax       bool
	SkipSubperiod   bool
	SkipSubsymmetry bool
	Backjump        bool

	KnownCells []KnownCell
}

// Validate checks the static shape of a Config, independent of the rule
// string (rule parsing happens in New, which wraps rule.ParseError into a
// ConfigError too). All failures here are ConfigErrors per spec §7; none
// of them can occur once a World has been constructed.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Reason: "width must be positive"}
	case c.Height <= 0:
		return &ConfigError{Reason: "height must be positive"}
	case c.Period <= 0:
		return &ConfigError{Reason: "period must be positive"}
	case c.DiagonalWidth < 0:
		return &ConfigError{Reason: "diagonal_width must be non-negative"}
	case c.MaxCellCount < 0:
		return &ConfigError{Reason: "max_cell_count must be non-negative"}
	}

	needsSquare := c.Transformation.ChangesAxes() || c.Symmetry.ChangesAxes()
	if needsSquare && c.Width != c.Height {
		return &ConfigError{Reason: "transformation/symmetry that swaps axes requires width == height"}
	}
	if c.Symmetry.RequiresNoDiagonal() && c.DiagonalWidth != 0 {
		return &ConfigError{Reason: "this symmetry requires diagonal_width == 0"}
	}
	if c.SearchOrder.Kind == FromVec && len(c.SearchOrder.Vec) == 0 {
		return &ConfigError{Reason: "search_order FromVec requires a non-empty coordinate vector"}
	}

	for _, kc := range c.KnownCells {
		if kc.X < 0 || kc.X >= c.Width || kc.Y < 0 || kc.Y >= c.Height || kc.T < 0 || kc.T >= c.Period {
			return &ConfigError{Reason: "known_cell out of range"}
		}
	}
	return nil
}

// LoadConfigYAML parses a Config from a YAML document, for the batch/
// unattended search runs named in spec §6 ("rlifesrc search --config
// search.yaml"). It does not validate the result; callers still go through
// New, which runs Validate.
func LoadConfigYAML(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigError{Reason: "malformed YAML config", Cause: err}
	}
	return cfg, nil
}

// resolvedSearchOrder turns SearchOrder.Kind == Automatic into a concrete
// choice per spec §4.2: "column-major if W < H, row-major if H < W,
// diagonal if W = H and d <= W".
func (c Config) resolvedSearchOrder() SearchOrderKind {
	if c.SearchOrder.Kind != Automatic {
		return c.SearchOrder.Kind
	}
	switch {
	case c.Width < c.Height:
		return ColumnMajor
	case c.Height < c.Width:
		return RowMajor
	case c.DiagonalWidth <= c.Width:
		return Diagonal
	default:
		return RowMajor
	}
}
