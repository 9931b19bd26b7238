package vc

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Vector is a message committed to by Commit: one field element per
// lottery slot, index i holding the owner's secret value for slot i.
type Vector = []fr.Element

// Commitment is an opaque binding-and-hiding-free commitment to a
// Vector. Two vectors that agree on every coordinate produce the same
// Commitment for a given SRS; this is the "deterministic" property
// checked in commit_test.go.
type Commitment struct {
	point bls12381.G1Affine
}

// Bytes returns the canonical compressed encoding used on the wire.
func (c Commitment) Bytes() []byte {
	b := c.point.Bytes()
	return b[:]
}

// IsIdentity reports whether the commitment is the point at infinity,
// i.e. a commitment to the all-zero vector.
func (c Commitment) IsIdentity() bool {
	return c.point.IsInfinity()
}

// Add returns the commitment to v+w given commitments to v and w -
// the homomorphic property the lottery's commitment-shift trick relies
// on.
func (c Commitment) Add(other Commitment) Commitment {
	var p bls12381.G1Jac
	p.FromAffine(&c.point)
	var q bls12381.G1Jac
	q.FromAffine(&other.point)
	p.AddAssign(&q)
	var out Commitment
	out.point.FromJacobian(&p)
	return out
}

// ShiftValue returns the commitment to a vector whose i-th coordinate
// increased by delta, all others unchanged - Commit(v + delta*e_i).
// This is exactly the shift the lottery layer applies to bind a ticket
// to a round-specific value without recomputing an opening proof.
func (srs *SRS) ShiftValue(c Commitment, index int, delta fr.Element) (Commitment, error) {
	if index < 0 || index >= srs.MessageLength {
		return Commitment{}, domainErrorf("index %d out of range [0,%d)", index, srs.MessageLength)
	}
	sc := delta.BigInt(new(big.Int))
	basePoint := srs.lagrange1Jac(index)
	var shiftJac bls12381.G1Jac
	shiftJac.ScalarMultiplication(&basePoint, sc)
	var base bls12381.G1Jac
	base.FromAffine(&c.point)
	base.AddAssign(&shiftJac)
	var out Commitment
	out.point.FromJacobian(&base)
	return out, nil
}

func (srs *SRS) lagrange1Jac(i int) bls12381.G1Jac {
	var p bls12381.G1Jac
	p.FromAffine(&srs.lagrange1[i])
	return p
}

// Commit computes the commitment to v under the SRS. len(v) must equal
// srs.MessageLength exactly.
func (srs *SRS) Commit(v Vector) (Commitment, error) {
	if len(v) != srs.MessageLength {
		return Commitment{}, domainErrorf("vector length %d, want %d", len(v), srs.MessageLength)
	}
	var p bls12381.G1Affine
	if _, err := p.MultiExp(srs.lagrange1, v, multiExpDefault); err != nil {
		return Commitment{}, err
	}
	return Commitment{point: p}, nil
}

var multiExpDefault = ecc.MultiExpConfig{}
