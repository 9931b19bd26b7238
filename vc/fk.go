package vc

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/b-wagn/jackpot/internal/debug"
	"github.com/b-wagn/jackpot/internal/groupfft"
	"github.com/b-wagn/jackpot/logger"
)

// fkTable caches the part of the FK batch-opening precomputation that
// depends only on the SRS (the powers-of-tau vector), not on any
// particular committed vector. Computing it is an O(L log L) group FFT
// done once at Setup time; OpeningTable then reuses it for every vector
// committed under this SRS.
type fkTable struct {
	domainL *fft.Domain
	uFFT    []bls12381.G1Jac
}

// buildFKTable pads the SRS's powers-of-tau vector to twice the message
// length (itself already a power of two, so the pad stays a power of
// two) and transforms it once "in the exponent", per the Toeplitz-
// matrix-via-convolution formulation of the Feist-Khovratovich
// algorithm.
func buildFKTable(srs *SRS) *fkTable {
	l := 2 * srs.MessageLength
	domainL := fft.NewDomain(uint64(l))

	u := make([]bls12381.G1Jac, l)
	for i := range srs.g1Pow {
		u[i].FromAffine(&srs.g1Pow[i])
	}
	for i := len(srs.g1Pow); i < l; i++ {
		u[i].Set(&jacIdentityG1)
	}
	groupfft.FFT(u, domainL.Generator)

	return &fkTable{domainL: domainL, uFFT: u}
}

// OpeningTable holds, for a single committed vector, every index's
// claimed value and opening proof, computed in one FK pass rather than
// one on-demand Open call per index.
type OpeningTable struct {
	values []fr.Element
	proofs []Opening
}

// At returns the claimed value and opening proof for index.
func (t *OpeningTable) At(index int) (fr.Element, Opening, error) {
	if index < 0 || index >= len(t.values) {
		return fr.Element{}, Opening{}, domainErrorf("index %d out of range [0,%d)", index, len(t.values))
	}
	return t.values[index], t.proofs[index], nil
}

// Preprocess runs the FK algorithm to compute opening proofs for every
// index of v at once, in O(n log n) group operations instead of the
// O(n^2) that n independent Open calls would cost.
func (srs *SRS) Preprocess(v Vector) (*OpeningTable, error) {
	if len(v) != srs.MessageLength {
		return nil, domainErrorf("vector length %d, want %d", len(v), srs.MessageLength)
	}
	n := srs.MessageLength
	d := n - 1
	fk := srs.fk

	coeffs := make([]fr.Element, n)
	copy(coeffs, v)
	srs.domain.FFTInverse(coeffs, 0)

	// f'_j = f_{d-j} for j in [0,d-1], padded with zeros to the doubled
	// length: this reversal is what turns the Toeplitz product into an
	// ordinary convolution with the tau-power vector. coeffs[0], the
	// constant term, never enters the convolution - only c_1..c_d do.
	fRevPad := make([]fr.Element, fk.domainL.Cardinality)
	for j := 0; j < d; j++ {
		fRevPad[j] = coeffs[d-j]
	}

	fk.domainL.FFT(fRevPad, 0)

	conv := make([]bls12381.G1Jac, len(fRevPad))
	for i := range conv {
		sc := fRevPad[i].BigInt(new(big.Int))
		conv[i].ScalarMultiplication(&fk.uFFT[i], sc)
	}
	groupfft.InvFFT(conv, fk.domainL.Generator)

	// h_i = conv[d-1-i] for i in [0,d-1]: the i-th partial-quotient
	// commitment in the monomial basis, still indexed by power not by
	// evaluation point. h[d] is the padding slot, not data, and is
	// hard-zeroed rather than read from conv.
	h := make([]bls12381.G1Jac, n)
	for i := 0; i < d; i++ {
		h[i].Set(&conv[d-1-i])
	}
	h[d].Set(&jacIdentityG1)

	// A forward group FFT over the message-length domain turns the
	// power-indexed partial quotients into per-root-of-unity opening
	// proofs - the other half of the FK transform.
	groupfft.FFT(h, srs.domain.Generator)

	proofs := make([]Opening, n)
	for i := range h {
		proofs[i].point.FromJacobian(&h[i])
	}

	values := make([]fr.Element, n)
	copy(values, v)

	table := &OpeningTable{values: values, proofs: proofs}

	if debug.Debug {
		// Slow-path consistency check: re-derive a handful of indices the
		// O(n) way and compare. Only runs under JACKPOT_DEBUG.
		log := logger.Logger()
		checked := 0
		for _, i := range []int{0, n / 2, n - 1} {
			if i < 0 || i >= n {
				continue
			}
			y, proof, err := srs.Open(v, i)
			if err != nil {
				return nil, err
			}
			if y != table.values[i] || proof.point != table.proofs[i].point {
				return nil, domainErrorf("FK table mismatch at index %d", i)
			}
			checked++
		}
		log.Debug().Int("checked", checked).Msg("vc: FK table self-check passed")
	}

	return table, nil
}
