package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepair/rlifesrc-go/rule"
)

func baseConfig() Config {
	return Config{
		Width: 5, Height: 5, Period: 1,
		Rule:   "B3/S23",
		Choose: ChooseDead,
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.Width = 0
	_, err := New(cfg)
	require.Error(t, err)
	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestNewRejectsBadRule(t *testing.T) {
	cfg := baseConfig()
	cfg.Rule = "not a rule"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewAppliesKnownCells(t *testing.T) {
	cfg := baseConfig()
	cfg.KnownCells = []KnownCell{{X: 2, Y: 2, T: 0, State: rule.Alive}}
	w, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, rule.Alive, w.Cell(2, 2, 0))
}

func TestNewRejectsContradictoryKnownCells(t *testing.T) {
	cfg := baseConfig()
	cfg.DiagonalWidth = 1
	cfg.KnownCells = []KnownCell{{X: 4, Y: 0, T: 0, State: rule.Alive}}
	_, err := New(cfg)
	require.Error(t, err)
}

func TestOutOfBoundsCellIsDead(t *testing.T) {
	cfg := baseConfig()
	w, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, rule.Dead, w.Cell(-1, 0, 0))
	assert.Equal(t, rule.Dead, w.Cell(100, 0, 0))
}

func TestSymmetryPeersAreLinked(t *testing.T) {
	cfg := baseConfig()
	cfg.Symmetry = D2Vertical
	w, err := New(cfg)
	require.NoError(t, err)

	id := w.cellIndex(0, 2, 0)
	mirror := w.cellIndex(4, 2, 0)
	found := false
	for _, p := range w.cells[id].peers {
		if p == mirror {
			found = true
		}
	}
	assert.True(t, found, "expected (0,2) to have (4,2) as a D2Vertical peer")
}
