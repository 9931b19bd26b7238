package vc

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Opening is a proof that a committed vector's coordinate at some index
// equals a claimed value. It is a single G1 point regardless of vector
// length.
type Opening struct {
	point bls12381.G1Affine
}

// Bytes returns the canonical compressed encoding used on the wire.
func (o Opening) Bytes() []byte {
	b := o.point.Bytes()
	return b[:]
}

// Open produces an opening proof that v[index] equals the returned
// value, by synthetic division of the interpolated polynomial by
// (X - omega^index) in coefficient form. This is the on-demand single-
// index path; Preprocess below amortizes this cost across every index
// at once.
func (srs *SRS) Open(v Vector, index int) (fr.Element, Opening, error) {
	if len(v) != srs.MessageLength {
		return fr.Element{}, Opening{}, domainErrorf("vector length %d, want %d", len(v), srs.MessageLength)
	}
	if index < 0 || index >= srs.MessageLength {
		return fr.Element{}, Opening{}, domainErrorf("index %d out of range [0,%d)", index, srs.MessageLength)
	}
	coeffs := make([]fr.Element, len(v))
	copy(coeffs, v)
	srs.domain.FFTInverse(coeffs, 0)

	var omegaI fr.Element
	omegaI.Exp(srs.domain.Generator, big.NewInt(int64(index)))

	quotient := divideByLinear(coeffs, omegaI)

	proof, err := srs.commitCoeffs(quotient)
	if err != nil {
		return fr.Element{}, Opening{}, err
	}
	return v[index], Opening{point: proof}, nil
}

// divideByLinear computes the quotient of p(X) (given by coeffs, low
// degree first) divided by (X - root), assuming p(root) is exactly the
// remainder dropped - i.e. the caller already knows p(root) equals the
// value being opened.
func divideByLinear(coeffs []fr.Element, root fr.Element) []fr.Element {
	n := len(coeffs)
	q := make([]fr.Element, n-1)
	if n == 0 {
		return q
	}
	q[n-2] = coeffs[n-1]
	for i := n - 2; i >= 1; i-- {
		var t fr.Element
		t.Mul(&root, &q[i])
		q[i-1].Add(&coeffs[i], &t)
	}
	return q
}

// commitCoeffs commits to a polynomial given in coefficient form using
// the monomial basis of the SRS (tau^i * G1), as opposed to Commit
// which uses the Lagrange basis for evaluation-form vectors.
func (srs *SRS) commitCoeffs(coeffs []fr.Element) (bls12381.G1Affine, error) {
	points := srs.g1Pow[:len(coeffs)]
	var p bls12381.G1Affine
	if _, err := p.MultiExp(points, coeffs, multiExpDefault); err != nil {
		return bls12381.G1Affine{}, err
	}
	return p, nil
}

// Verify checks that opening proves v[index] == y against commitment c,
// returning a plain boolean - a failed verification is never surfaced
// as an error, only a malformed/out-of-range input is.
func (srs *SRS) Verify(c Commitment, index int, y fr.Element, opening Opening) (bool, error) {
	if index < 0 || index >= srs.MessageLength {
		return false, domainErrorf("index %d out of range [0,%d)", index, srs.MessageLength)
	}
	g1Gen, _, _, _ := bls12381.Generators()

	ySc := y.BigInt(new(big.Int))
	var yG1 bls12381.G1Jac
	yG1.ScalarMultiplication(&g1Gen, ySc)

	var lhsJac bls12381.G1Jac
	lhsJac.FromAffine(&c.point)
	lhsJac.SubAssign(&yG1)
	var lhs bls12381.G1Affine
	lhs.FromJacobian(&lhsJac)

	var negProof bls12381.G1Affine
	negProof.Neg(&opening.point)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{lhs, negProof},
		[]bls12381.G2Affine{srs.g2Gen, srs.dPrepared[index]},
	)
	if err != nil {
		return false, err
	}
	return ok, nil
}
