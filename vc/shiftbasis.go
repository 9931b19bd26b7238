package vc

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/b-wagn/jackpot/internal/parallel"
)

// buildShiftBasis commits, for every index i, to
// (L_i(X) - 1) / (X - omega^i): the fixed correction term that turns an
// opening proof at index i for vector v into a valid opening proof at
// index i for v with its i-th coordinate increased by any public
// constant, without redoing the polynomial division. L_i's coefficients
// have a closed form (they are the inverse DFT of the i-th standard
// basis vector), so this needs no FFT, just one synthetic division and
// one monomial-basis commitment per index.
func buildShiftBasis(srs *SRS) []bls12381.G1Affine {
	n := srs.MessageLength
	omega := srs.domain.Generator
	var omegaInv fr.Element
	omegaInv.Inverse(&omega)
	var nInv fr.Element
	nInv.SetUint64(uint64(n))
	nInv.Inverse(&nInv)

	out := make([]bls12381.G1Affine, n)
	_ = parallel.Execute(0, n, func(start, end int) error {
		for i := start; i < end; i++ {
			var omegaInvI fr.Element
			omegaInvI.Exp(omegaInv, big.NewInt(int64(i)))

			coeffs := make([]fr.Element, n)
			coeffs[0].Set(&nInv)
			for k := 1; k < n; k++ {
				coeffs[k].Mul(&coeffs[k-1], &omegaInvI)
			}
			var one fr.Element
			one.SetOne()
			coeffs[0].Sub(&coeffs[0], &one)

			var omegaI fr.Element
			omegaI.Exp(omega, big.NewInt(int64(i)))

			quotient := divideByLinear(coeffs, omegaI)
			p, err := srs.commitCoeffs(quotient)
			if err != nil {
				return err
			}
			out[i] = p
		}
		return nil
	})
	return out
}

// ShiftOpening adjusts an opening proof at index so that it proves the
// vector's value at index increased by delta, everything else held
// fixed, without redoing the division the original proof came from.
func (srs *SRS) ShiftOpening(proof Opening, index int, delta fr.Element) (Opening, error) {
	if index < 0 || index >= srs.MessageLength {
		return Opening{}, domainErrorf("index %d out of range [0,%d)", index, srs.MessageLength)
	}
	sc := delta.BigInt(new(big.Int))
	basis := srs.shiftBasis[index]
	var basisJac bls12381.G1Jac
	basisJac.FromAffine(&basis)
	var corr bls12381.G1Jac
	corr.ScalarMultiplication(&basisJac, sc)

	var base bls12381.G1Jac
	base.FromAffine(&proof.point)
	base.AddAssign(&corr)

	var out Opening
	out.point.FromJacobian(&base)
	return out, nil
}
