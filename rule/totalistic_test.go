package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func deadNeighbours() [8]State {
	var n [8]State
	for i := range n {
		n[i] = Dead
	}
	return n
}

func TestParseLifeForward(t *testing.T) {
	tbl, err := Parse("B3/S23")
	assert.NoError(t, err)
	assert.Equal(t, 2, tbl.NumStates())
	assert.False(t, tbl.IsGenerations())
	assert.Equal(t, Moore, tbl.Neighborhood())

	allDead := deadNeighbours()
	e := tbl.Forward(Dead, allDead)
	assert.Equal(t, Dead, e.ImpliedSuccessor)

	threeAlive := deadNeighbours()
	threeAlive[0], threeAlive[1], threeAlive[2] = Alive, Alive, Alive
	e = tbl.Forward(Dead, threeAlive)
	assert.Equal(t, Alive, e.ImpliedSuccessor)

	twoAlive := deadNeighbours()
	twoAlive[0], twoAlive[1] = Alive, Alive
	e = tbl.Forward(Alive, twoAlive)
	assert.Equal(t, Alive, e.ImpliedSuccessor)

	oneAlive := deadNeighbours()
	oneAlive[0] = Alive
	e = tbl.Forward(Alive, oneAlive)
	assert.Equal(t, Dead, e.ImpliedSuccessor)
}

func TestParseRejectsB0(t *testing.T) {
	_, err := Parse("B0/S23")
	assert.Error(t, err)
	var b0 *ErrB0
	assert.ErrorAs(t, err, &b0)
}

func TestParseGenerationsBareDigits(t *testing.T) {
	tbl, err := Parse("34/357/5")
	assert.NoError(t, err)
	assert.True(t, tbl.IsGenerations())
	assert.Equal(t, 5, tbl.NumStates())

	// A Dying cell always advances regardless of neighbours.
	e := tbl.Forward(State(2), deadNeighbours())
	assert.Equal(t, State(3), e.ImpliedSuccessor)
	e = tbl.Forward(State(4), deadNeighbours())
	assert.Equal(t, Dead, e.ImpliedSuccessor)
}

func TestParseSuffixNeighborhood(t *testing.T) {
	tbl, err := Parse("B3/S23H")
	assert.NoError(t, err)
	assert.Equal(t, Hex, tbl.Neighborhood())

	tbl, err = Parse("B2/S3V")
	assert.NoError(t, err)
	assert.Equal(t, VonNeumann, tbl.Neighborhood())
}

func TestParseIsotropic(t *testing.T) {
	tbl, err := Parse("B2-a3/S23-a")
	assert.NoError(t, err)
	assert.Equal(t, 2, tbl.NumStates())

	// exercise both branches of the letter-restricted count without
	// asserting Golly's exact canonical letters (see hensel.go).
	allDead := deadNeighbours()
	e := tbl.Forward(Dead, allDead)
	assert.Equal(t, Dead, e.ImpliedSuccessor)
}

func TestParseUnknownCurrentUnionsSuccessors(t *testing.T) {
	tbl, err := Parse("B3/S23")
	assert.NoError(t, err)

	allDead := deadNeighbours()
	e := tbl.Forward(Unknown, allDead)
	// Dead with no neighbours -> Dead; Alive with no neighbours -> Dead
	// (fails survival). Both resolve to Dead, so this is still forced.
	assert.Equal(t, Dead, e.ImpliedSuccessor)

	twoAlive := deadNeighbours()
	twoAlive[0], twoAlive[1] = Alive, Alive
	e = tbl.Forward(Unknown, twoAlive)
	// Dead-with-2 stays Dead, Alive-with-2 survives: not forced.
	assert.Equal(t, Unknown, e.ImpliedSuccessor)
	assert.True(t, e.PossibleSuccessor.Has(Dead))
	assert.True(t, e.PossibleSuccessor.Has(Alive))
}

func TestImpliedNeighboursDeadToDeadNotForced(t *testing.T) {
	tbl, err := Parse("B3/S23")
	assert.NoError(t, err)

	n := deadNeighbours()
	n[0], n[1] = Unknown, Unknown
	// current Dead, successor Dead, two unknown slots: born needs exactly
	// 3 alive but only 2 unknown slots exist and the rest are Dead, so
	// neither unknown slot can reach 3 -> no forcing from this alone, but
	// if successor is Dead with 0 known-alive and 2 unknown, 3 alive is
	// unreachable regardless, so nothing is forced (both combos valid).
	forced := tbl.ImpliedNeighbours(Dead, Dead, n)
	assert.Equal(t, Unknown, forced[0])
	assert.Equal(t, Unknown, forced[1])
}

func TestBackward(t *testing.T) {
	tbl, err := Parse("B3/S23")
	assert.NoError(t, err)

	allDead := deadNeighbours()
	set := tbl.Backward(Alive, allDead)
	// No neighbours alive: only Alive-current survives to Dead, Dead stays
	// Dead - neither produces Alive, so the backward set is empty.
	assert.True(t, set.Empty())

	threeAlive := deadNeighbours()
	threeAlive[0], threeAlive[1], threeAlive[2] = Alive, Alive, Alive
	set = tbl.Backward(Alive, threeAlive)
	assert.True(t, set.Has(Dead))
	assert.True(t, set.Has(Alive))
}
