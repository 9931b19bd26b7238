package vc

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// randomScalar draws a uniform field element from rng, so that setup's
// tau respects the entropy-oracle abstraction. The lottery packages
// draw secret vectors with their own copies of this routine, and
// beacon seeds are raw bytes read straight from rng.
//
// We read twice the modulus' byte length and reduce, which biases the
// output by at most 2^-128 relative to uniform - negligible, and the
// same wide-reduction trick the hash-to-field routines in lottery/hash.go
// use.
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

// randomScalars fills a length-n vector with independent uniform field
// elements.
func randomScalars(rng io.Reader, n int) ([]fr.Element, error) {
	out := make([]fr.Element, n)
	for i := range out {
		s, err := randomScalar(rng)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
