package jack

import (
	"io"
	"math/big"

	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/b-wagn/jackpot/vc"
)

// randomVector draws n independent uniform field elements from rng,
// the same wide-reduction technique vc's internal randomScalar uses,
// duplicated here because it is not exported across the package
// boundary.
func randomVector(rng io.Reader, n int) (vc.Vector, error) {
	modulus := bls12381fr.Modulus()
	width := 2 * ((modulus.BitLen() + 7) / 8)
	out := make(vc.Vector, n)
	buf := make([]byte, width)
	for i := range out {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		bi := new(big.Int).SetBytes(buf)
		bi.Mod(bi, modulus)
		out[i].SetBigInt(bi)
	}
	return out, nil
}

func rngRead(rng io.Reader, buf []byte) (int, error) {
	return io.ReadFull(rng, buf)
}
