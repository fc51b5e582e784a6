package search

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/telepair/rlifesrc-go/rule"
)

const snapshotVersion = 1

// Snapshot is the serializable form of a World's full search state: its
// Config plus every cell's decided/deduced value and the decision stack
// needed to resume backtracking exactly where it left off, per spec §6
// ("save/load the search state"). Format records which encoding produced
// this value ("yaml" or "json"); it is informational only, since LoadYAML
// and LoadJSON are told which codec to use by their caller and
// LoadSnapshot picks one from the data's leading byte.
type Snapshot struct {
	Version int    `yaml:"version" json:"version"`
	Format  string `yaml:"format,omitempty" json:"format,omitempty"`
	Config  Config `yaml:"config" json:"config"`

	CellStates []rule.State `yaml:"cell_states" json:"cell_states"`
	CellReason []uint8      `yaml:"cell_reasons" json:"cell_reasons"`
	CellVia    []int32      `yaml:"cell_via" json:"cell_via"`

	SetStack  []int32            `yaml:"set_stack" json:"set_stack"`
	Decisions []snapshotDecision `yaml:"decisions" json:"decisions"`

	Status Status `yaml:"status" json:"status"`
}

type snapshotDecision struct {
	Cell        int32      `yaml:"cell" json:"cell"`
	SetStackPos int        `yaml:"set_stack_pos" json:"set_stack_pos"`
	First       rule.State `yaml:"first" json:"first"`
	Flipped     bool       `yaml:"flipped" json:"flipped"`
}

// Save captures the World's full mutable state.
func (w *World) Save() Snapshot {
	snap := Snapshot{
		Version: snapshotVersion,
		Config:  w.cfg,
		Status:  w.status,

		CellStates: make([]rule.State, len(w.cells)),
		CellReason: make([]uint8, len(w.cells)),
		CellVia:    make([]int32, len(w.cells)),
		SetStack:   make([]int32, len(w.setStack)),
		Decisions:  make([]snapshotDecision, len(w.decisions)),
	}
	for i := range w.cells {
		snap.CellStates[i] = w.cells[i].state
		snap.CellReason[i] = uint8(w.cells[i].reason)
		snap.CellVia[i] = int32(w.cells[i].via)
	}
	for i, id := range w.setStack {
		snap.SetStack[i] = int32(id)
	}
	for i, d := range w.decisions {
		snap.Decisions[i] = snapshotDecision{
			Cell: int32(d.cell), SetStackPos: d.setStackPos,
			First: d.first, Flipped: d.flipped,
		}
	}
	return snap
}

// Load rebuilds a World from a Snapshot: New() re-derives the fixed
// topology from Snapshot.Config, then the saved cell values and decision
// stack are replayed on top of it.
func Load(snap Snapshot) (*World, error) {
	if snap.Version != snapshotVersion {
		return nil, &SaveError{Reason: "unsupported snapshot version"}
	}
	w, err := New(snap.Config)
	if err != nil {
		return nil, &SaveError{Reason: "snapshot config no longer builds a valid world", Cause: err}
	}
	if len(snap.CellStates) != len(w.cells) {
		return nil, &SaveError{Reason: "snapshot cell count does not match rebuilt world"}
	}

	for i := range w.cells {
		if w.cells[i].frozen {
			continue // New() already derived these via known_cells/diagonal_width.
		}
		w.cells[i].state = snap.CellStates[i]
		w.cells[i].reason = reason(snap.CellReason[i])
		w.cells[i].via = cellID(snap.CellVia[i])
	}

	w.setStack = make([]cellID, len(snap.SetStack))
	for i, id := range snap.SetStack {
		w.setStack[i] = cellID(id)
	}
	w.setCount.Store(int64(len(w.setStack)))
	w.decisions = make([]decisionRecord, len(snap.Decisions))
	for i, d := range snap.Decisions {
		w.decisions[i] = decisionRecord{
			cell: cellID(d.Cell), setStackPos: d.SetStackPos,
			first: d.First, flipped: d.Flipped,
		}
	}
	w.decisionDepth.Store(int64(len(w.decisions)))
	w.status = snap.Status
	return w, nil
}

// SaveYAML marshals the World's current state to YAML, the save-file
// format described in spec §6.
func (w *World) SaveYAML() ([]byte, error) {
	snap := w.Save()
	snap.Format = "yaml"
	return yaml.Marshal(snap)
}

// LoadYAML unmarshals a YAML save file and rebuilds the World it describes.
func LoadYAML(data []byte) (*World, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, &SaveError{Reason: "malformed YAML", Cause: err}
	}
	return Load(snap)
}

// SaveJSON marshals the World's current state to JSON, the alternative
// save-file format named in spec §6.
func (w *World) SaveJSON() ([]byte, error) {
	snap := w.Save()
	snap.Format = "json"
	return json.MarshalIndent(snap, "", "  ")
}

// LoadJSON unmarshals a JSON save file and rebuilds the World it describes.
func LoadJSON(data []byte) (*World, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &SaveError{Reason: "malformed JSON", Cause: err}
	}
	return Load(snap)
}

// LoadSnapshot sniffs whether data is JSON or YAML (JSON documents always
// start with '{' once leading whitespace is trimmed) and dispatches to the
// matching loader, so the CLI's --load flag doesn't need its own format
// flag.
func LoadSnapshot(data []byte) (*World, error) {
	if isJSON(data) {
		return LoadJSON(data)
	}
	return LoadYAML(data)
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
