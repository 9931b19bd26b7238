package blshash

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// randomScalar draws a uniform field element from rng via the same
// wide-reduction technique vc.randomScalar uses internally.
func randomScalar(rng io.Reader) (fr.Element, error) {
	modulus := fr.Modulus()
	buf := make([]byte, 2*((modulus.BitLen()+7)/8))
	if _, err := io.ReadFull(rng, buf); err != nil {
		return fr.Element{}, err
	}
	bi := new(big.Int).SetBytes(buf)
	bi.Mod(bi, modulus)
	var e fr.Element
	e.SetBigInt(bi)
	return e, nil
}
