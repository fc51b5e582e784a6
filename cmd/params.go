package cmd

import (
	"fmt"
	"strings"

	"github.com/telepair/rlifesrc-go/search"
)

func parseTransformation(s string) (search.Transformation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id", "identity":
		return search.Identity, nil
	case "r90", "rotate90":
		return search.Rotate90, nil
	case "r180", "rotate180":
		return search.Rotate180, nil
	case "r270", "rotate270":
		return search.Rotate270, nil
	case "f|", "flipvertical":
		return search.FlipVertical, nil
	case "f-", "fliphorizontal":
		return search.FlipHorizontal, nil
	case `f\`, "flipdiagonal":
		return search.FlipDiagonal, nil
	case "f/", "flipantidiagonal":
		return search.FlipAntiDiagonal, nil
	default:
		return 0, fmt.Errorf("unknown transformation %q", s)
	}
}

func parseSymmetry(s string) (search.Symmetry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c1":
		return search.C1, nil
	case "c2":
		return search.C2, nil
	case "c4":
		return search.C4, nil
	case "d2|", "d2vertical":
		return search.D2Vertical, nil
	case "d2-", "d2horizontal":
		return search.D2Horizontal, nil
	case `d2\`, "d2diagonal":
		return search.D2Diagonal, nil
	case "d2/", "d2antidiag":
		return search.D2AntiDiag, nil
	case "d4+", "d4plus":
		return search.D4Plus, nil
	case "d4x":
		return search.D4X, nil
	case "d8":
		return search.D8, nil
	default:
		return 0, fmt.Errorf("unknown symmetry %q", s)
	}
}

func parseChoose(s string) (search.Choose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dead":
		return search.ChooseDead, nil
	case "alive":
		return search.ChooseAlive, nil
	case "random":
		return search.ChooseRandom, nil
	case "smart":
		return search.ChooseSmart, nil
	default:
		return 0, fmt.Errorf("unknown choose policy %q", s)
	}
}

func parseSearchOrder(s string) (search.SearchOrderKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "automatic":
		return search.Automatic, nil
	case "row", "rowmajor":
		return search.RowMajor, nil
	case "column", "columnmajor":
		return search.ColumnMajor, nil
	case "diagonal":
		return search.Diagonal, nil
	default:
		return 0, fmt.Errorf("unknown search order %q", s)
	}
}
