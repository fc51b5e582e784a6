package rule

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeMAPBitsWrongLength(t *testing.T) {
	_, err := DecodeMAPBits(base64.RawStdEncoding.EncodeToString([]byte("too short")))
	assert.Error(t, err)
}

func TestMAPMatchesEquivalentLifeRule(t *testing.T) {
	// Build the 512-bit truth table for B3/S23 directly and confirm it
	// agrees with the outer-totalistic table built from the rule string.
	life, err := Parse("B3/S23")
	assert.NoError(t, err)

	var data [64]byte
	for idx := 0; idx < 512; idx++ {
		currentAlive := idx&1 != 0
		count := 0
		for i := 0; i < 8; i++ {
			if idx&(1<<uint(i+1)) != 0 {
				count++
			}
		}
		born := count == 3
		survive := count == 2 || count == 3
		alive := born
		if currentAlive {
			alive = survive
		}
		if alive {
			data[idx/8] |= 1 << uint(7-idx%8)
		}
	}

	payload := base64.RawStdEncoding.EncodeToString(data[:])
	mapTbl, err := Parse("MAP" + payload)
	assert.NoError(t, err)

	allDead := deadNeighbours()
	threeAlive := deadNeighbours()
	threeAlive[0], threeAlive[1], threeAlive[2] = Alive, Alive, Alive

	assert.Equal(t, life.Forward(Dead, allDead).ImpliedSuccessor, mapTbl.Forward(Dead, allDead).ImpliedSuccessor)
	assert.Equal(t, life.Forward(Dead, threeAlive).ImpliedSuccessor, mapTbl.Forward(Dead, threeAlive).ImpliedSuccessor)
	assert.Equal(t, Alive, mapTbl.Forward(Dead, threeAlive).ImpliedSuccessor)
}
