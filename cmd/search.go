package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/telepair/rlifesrc-go/search"
)

var (
	flagWidth, flagHeight, flagPeriod int
	flagDX, flagDY                    int
	flagRule                          string
	flagTransformation                string
	flagSymmetry                      string
	flagDiagonalWidth                 int
	flagMaxCellCount                  int
	flagReduceMax                     bool
	flagSkipSubperiod                 bool
	flagSkipSubsymmetry               bool
	flagBackjump                      bool
	flagChoose                        string
	flagRandomSeed                    int64
	flagSearchOrder                   string
	flagCount                         int
	flagMaxConflicts                  int
	flagSavePath                      string
	flagSaveFormat                    string
	flagLoadPath                      string
	flagConfigPath                    string
)

var searchCmd = &cobra.Command{
	Use:   "search [W H [P [DX [DY]]]]",
	Short: "Search for a periodic pattern matching the given rule and constraints",
	Args:  cobra.MaximumNArgs(5),
	RunE:  runSearch,
}

// applyPositionalArgs overrides the width/height/period/dx/dy flag defaults
// with the positional "W H [P [DX [DY]]]" form of spec §6/SPEC_FULL §6.
// Both forms may be mixed; an empty args slice leaves the flags untouched.
func applyPositionalArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 {
		return fmt.Errorf("positional args require at least W and H")
	}
	vals := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("positional arg %q: %w", a, err)
		}
		vals[i] = n
	}
	flagWidth, flagHeight = vals[0], vals[1]
	if len(vals) >= 3 {
		flagPeriod = vals[2]
	}
	if len(vals) >= 4 {
		flagDX = vals[3]
	}
	if len(vals) >= 5 {
		flagDY = vals[4]
	}
	return nil
}

func init() {
	f := searchCmd.Flags()
	f.IntVar(&flagWidth, "width", 16, "World width")
	f.IntVar(&flagHeight, "height", 16, "World height")
	f.IntVar(&flagPeriod, "period", 1, "World period")
	f.IntVar(&flagDX, "dx", 0, "Horizontal translation per period")
	f.IntVar(&flagDY, "dy", 0, "Vertical translation per period")
	f.StringVar(&flagRule, "rule", "B3/S23", "Cellular automaton rule string")
	f.StringVar(&flagTransformation, "transformation", "identity", "Transformation applied per period wrap (identity/r90/r180/r270/f|/f-/f\\/f/)")
	f.StringVar(&flagSymmetry, "symmetry", "C1", "Symmetry group every generation must respect (C1/C2/C4/D2|/D2-/D2\\/D2//D4+/D4x/D8)")
	f.IntVar(&flagDiagonalWidth, "diagonal-width", 0, "Freeze cells beyond this distance from the main diagonal (0 disables)")
	f.IntVar(&flagMaxCellCount, "max-cell-count", 0, "Reject solutions whose sparsest generation has more live cells than this (0 disables)")
	f.BoolVar(&flagReduceMax, "reduce-max", false, "Tighten max-cell-count to each solution's count minus one")
	f.BoolVar(&flagSkipSubperiod, "skip-subperiod", false, "Reject solutions whose true period properly divides period")
	f.BoolVar(&flagSkipSubsymmetry, "skip-subsymmetry", false, "Reject solutions with symmetry beyond the configured group")
	f.BoolVar(&flagBackjump, "backjump", false, "Enable non-chronological backtracking where safe")
	f.StringVar(&flagChoose, "choose", "dead", "Initial value policy for branched cells (dead/alive/random/smart)")
	f.Int64Var(&flagRandomSeed, "random-seed", 0, "Seed for the random/smart choose policies")
	f.StringVar(&flagSearchOrder, "search-order", "auto", "Spine layout (auto/row/column/diagonal)")
	f.IntVar(&flagCount, "count", 1, "Number of solutions to find (0 for unlimited)")
	f.IntVar(&flagMaxConflicts, "max-conflicts", 100000, "Conflict budget per Step call (0 for unlimited)")
	f.StringVar(&flagSavePath, "save", "", "Write a snapshot here when the search stops")
	f.StringVar(&flagSaveFormat, "save-format", "yaml", "Snapshot format to write with --save (yaml/json)")
	f.StringVar(&flagLoadPath, "load", "", "Resume from a saved snapshot (YAML or JSON, auto-detected) instead of building a new world")
	f.StringVar(&flagConfigPath, "config", "", "Load search flags from a YAML config file instead of the flags above, for batch runs")
}

func buildConfig() (search.Config, error) {
	if flagConfigPath != "" {
		data, err := os.ReadFile(flagConfigPath)
		if err != nil {
			return search.Config{}, fmt.Errorf("reading config: %w", err)
		}
		return search.LoadConfigYAML(data)
	}

	transformation, err := parseTransformation(flagTransformation)
	if err != nil {
		return search.Config{}, err
	}
	symmetry, err := parseSymmetry(flagSymmetry)
	if err != nil {
		return search.Config{}, err
	}
	choose, err := parseChoose(flagChoose)
	if err != nil {
		return search.Config{}, err
	}
	orderKind, err := parseSearchOrder(flagSearchOrder)
	if err != nil {
		return search.Config{}, err
	}

	return search.Config{
		Width: flagWidth, Height: flagHeight, Period: flagPeriod,
		DX: flagDX, DY: flagDY,

		Transformation: transformation,
		Symmetry:       symmetry,
		Rule:           flagRule,

		DiagonalWidth: flagDiagonalWidth,
		MaxCellCount:  flagMaxCellCount,

		SearchOrder: search.SearchOrder{Kind: orderKind},
		Choose:      choose,
		RandomSeed:  flagRandomSeed,

		ReduceMax:       flagReduceMax,
		SkipSubperiod:   flagSkipSubperiod,
		SkipSubsymmetry: flagSkipSubsymmetry,
		Backjump:        flagBackjump,
	}, nil
}

func loadWorld() (*search.World, error) {
	if flagLoadPath != "" {
		data, err := os.ReadFile(flagLoadPath)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		return search.LoadSnapshot(data)
	}
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	return search.New(cfg)
}

func runSearch(cmd *cobra.Command, args []string) error {
	InitLog()

	if err := applyPositionalArgs(args); err != nil {
		return err
	}

	w, err := loadWorld()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	InitProfile(ctx, func() []any {
		return []any{"decision_depth", w.DecisionDepth(), "set_count", w.SetCount()}
	})

	out := cmd.OutOrStdout()
	solutions := 0
loop:
	for flagCount == 0 || solutions < flagCount {
		select {
		case <-ctx.Done():
			break loop
		default:
		}

		switch status := w.Step(flagMaxConflicts); status {
		case search.Found:
			solutions++
			fmt.Fprintf(out, "--- solution %d ---\n", solutions)
			printGrid(out, w)
		case search.None:
			fmt.Fprintln(out, "no (further) solution exists")
			break loop
		case search.Searching:
			// conflict budget exhausted for this call; Step again.
		}
	}

	if flagSavePath != "" {
		var data []byte
		var err error
		switch strings.ToLower(flagSaveFormat) {
		case "", "yaml":
			data, err = w.SaveYAML()
		case "json":
			data, err = w.SaveJSON()
		default:
			return fmt.Errorf("unknown save format %q", flagSaveFormat)
		}
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		if err := os.WriteFile(flagSavePath, data, 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("writing snapshot: %w", err)
		}
	}
	return nil
}

// printGrid writes every generation of the current assignment as rows of
// rule.State characters, the minimal grid dump of spec §6 (not a full
// RLE/Plaintext writer).
func printGrid(w interface{ Write([]byte) (int, error) }, world *search.World) {
	var b strings.Builder
	for t := 0; t < world.Period(); t++ {
		fmt.Fprintf(&b, "generation %d:\n", t)
		for y := 0; y < world.Height(); y++ {
			for x := 0; x < world.Width(); x++ {
				b.WriteString(world.Cell(x, y, t).String())
			}
			b.WriteByte('\n')
		}
	}
	_, _ = w.Write([]byte(b.String()))
}
