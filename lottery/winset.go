package lottery

import (
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// WinningSet is the predicate W = { x : canonical_integer(x) mod k == 0
// }, giving exactly a 1/k chance that a uniformly random field element
// lands in the set. k need not be a power of two, but when it is,
// membership reduces to checking the low log2(k) bits of x's canonical
// integer representative rather than doing a full big.Int mod.
type WinningSet struct {
	k       uint64
	kIsPow2 bool
	lowBits uint
}

// NewWinningSet builds the predicate for a 1-in-k winning probability.
// k must be at least 1; k == 1 means everyone wins every round.
func NewWinningSet(k uint64) WinningSet {
	ws := WinningSet{k: k}
	if k != 0 && bits.OnesCount64(k) == 1 {
		ws.kIsPow2 = true
		ws.lowBits = uint(bits.TrailingZeros64(k))
	}
	return ws
}

// Contains reports whether x's canonical integer representative falls
// in the winning set.
func (ws WinningSet) Contains(x fr.Element) bool {
	if ws.kIsPow2 {
		var bi big.Int
		x.BigInt(&bi)
		return maskLowBits(&bi, ws.lowBits) == 0
	}
	var bi big.Int
	x.BigInt(&bi)
	mod := new(big.Int).Mod(&bi, new(big.Int).SetUint64(ws.k))
	return mod.Sign() == 0
}

func maskLowBits(bi *big.Int, n uint) uint64 {
	if n == 0 {
		return 0
	}
	mask := new(big.Int).Lsh(big.NewInt(1), n)
	mask.Sub(mask, big.NewInt(1))
	masked := new(big.Int).And(bi, mask)
	return masked.Uint64()
}
