package lottery

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/gtank/merlin"
)

// domainTag is the application label every transcript in this module
// opens with, binding every derived challenge to this scheme family so
// a transcript built here can never collide with one built for an
// unrelated protocol even if the same beacon bytes were reused.
const domainTag = "jackpot/label/v1"

// HashToField derives a field element from tag and inputs via a Merlin
// transcript: tag picks out which challenge is being derived (a per-
// round seed, a ticket value, a BLS-H winning check, ...) and inputs
// are appended in order, so callers control exactly what the challenge
// is bound to.
func HashToField(tag string, inputs ...[]byte) fr.Element {
	t := merlin.NewTranscript(domainTag)
	t.AppendMessage([]byte("tag"), []byte(tag))
	for i, in := range inputs {
		t.AppendMessage([]byte(fmt.Sprintf("in%d", i)), in)
	}
	wide := t.ExtractBytes([]byte("out"), 64)

	bi := new(big.Int).SetBytes(wide)
	bi.Mod(bi, fr.Modulus())
	var e fr.Element
	e.SetBigInt(bi)
	return e
}

// HashSeedToField binds a round's seed into a field element the way
// every scheme's round challenge is derived: the beacon bytes plus the
// round number, under a tag naming what the challenge is for (e.g. the
// round's shared index versus the round's public shift).
func HashSeedToField(tag string, seed Seed) fr.Element {
	roundBytes := make([]byte, 8)
	for i := 0; i < 8; i++ {
		roundBytes[i] = byte(seed.Round >> (8 * i))
	}
	return HashToField(tag, seed.Beacon, roundBytes)
}
