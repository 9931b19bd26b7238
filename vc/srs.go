package vc

import (
	"math/big"
	"math/bits"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/pkg/errors"

	"github.com/b-wagn/jackpot/internal/entropy"
	"github.com/b-wagn/jackpot/internal/groupfft"
	"github.com/b-wagn/jackpot/internal/parallel"
	"github.com/b-wagn/jackpot/logger"
)

// SRS is the deterministic structured reference string produced by
// Setup. MessageLength is the committed vector's fixed length and must
// be a power of two; N is the corresponding polynomial degree bound
// (MessageLength - 1).
//
// Everything here is public: the SRS carries no secret state once
// Setup returns (tau itself is never retained).
type SRS struct {
	N             int
	MessageLength int

	domain *fft.Domain

	// g1Pow holds tau^i * G1 for i in [0, N], in monomial order.
	g1Pow []bls12381.G1Affine
	// g2Gen, g2Tau hold G2 and tau*G2 - the only two G2 elements the
	// scheme ever needs (see SPEC_FULL.md, Open Questions).
	g2Gen bls12381.G2Affine
	g2Tau bls12381.G2Affine

	// lagrange1 holds L_i(tau)*G1 for i in [0, MessageLength), i.e. the
	// commitment to the vector's i-th unit basis vector. Built from
	// g1Pow by an inverse FFT in the exponent.
	lagrange1 []bls12381.G1Affine

	// dPrepared[i] = tau*G2 - omega^i*G2, precomputed so Verify's pairing
	// check doesn't redo a G2 subtraction per call.
	dPrepared []bls12381.G2Affine

	// shiftBasis[i] is the commitment to (L_i(X) - 1) / (X - omega^i),
	// the fixed correction an opening proof at index i needs when the
	// committed vector's i-th coordinate alone is shifted by a public
	// constant. See ShiftOpening.
	shiftBasis []bls12381.G1Affine

	fk *fkTable
}

// Setup draws a fresh toxic waste scalar tau from rng and builds an SRS
// supporting vectors of the given length. numLotteries must be a power
// of two and at least 2; rng is consumed once and discarded, mirroring
// the original setup routine's "tau is sampled once, never stored"
// contract.
func Setup(rng entropy.Reader, numLotteries int) (*SRS, error) {
	if numLotteries < 2 || bits.OnesCount(uint(numLotteries)) != 1 {
		return nil, domainErrorf("numLotteries %d is not a power of two >= 2", numLotteries)
	}
	tau, err := randomScalar(rng)
	if err != nil {
		return nil, errors.Wrap(err, "drawing setup randomness")
	}
	log := logger.Logger()
	log.Debug().Int("messageLength", numLotteries).Msg("vc: generating SRS")
	srs, err := setupFromTau(numLotteries, tau)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("messageLength", numLotteries).Msg("vc: SRS ready")
	return srs, nil
}

// setupFromTau is split out so tests can build a known-tau SRS without
// threading a rigged entropy reader through Setup.
func setupFromTau(numLotteries int, tau fr.Element) (*SRS, error) {
	n := numLotteries - 1
	domain := fft.NewDomain(uint64(numLotteries))

	g1Gen, g2GenJac, _, g2Gen := bls12381.Generators()

	g1Pow := make([]bls12381.G1Affine, n+1)
	powers := make([]fr.Element, n+1)
	powers[0].SetOne()
	for i := 1; i < len(powers); i++ {
		powers[i].Mul(&powers[i-1], &tau)
	}
	if err := parallel.Execute(0, len(powers), func(start, end int) error {
		for i := start; i < end; i++ {
			sc := powers[i].BigInt(new(big.Int))
			var p bls12381.G1Jac
			p.ScalarMultiplication(&g1Gen, sc)
			g1Pow[i].FromJacobian(&p)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	var g2Tau bls12381.G2Affine
	{
		sc := tau.BigInt(new(big.Int))
		var p bls12381.G2Jac
		p.ScalarMultiplication(&g2GenJac, sc)
		g2Tau.FromJacobian(&p)
	}

	lagrange1 := lagrangeImages(g1Pow, domain)

	dPrepared := make([]bls12381.G2Affine, numLotteries)
	var g2TauJac bls12381.G2Jac
	g2TauJac.FromAffine(&g2Tau)
	for i := 0; i < numLotteries; i++ {
		omegaI := domain.Generator
		omegaI.Exp(omegaI, big.NewInt(int64(i)))
		sc := omegaI.BigInt(new(big.Int))
		var omegaG2 bls12381.G2Jac
		omegaG2.ScalarMultiplication(&g2GenJac, sc)
		var d bls12381.G2Jac
		d.Set(&g2TauJac)
		d.SubAssign(&omegaG2)
		dPrepared[i].FromJacobian(&d)
	}

	srs := &SRS{
		N:             n,
		MessageLength: numLotteries,
		domain:        domain,
		g1Pow:         g1Pow,
		g2Gen:         g2Gen,
		g2Tau:         g2Tau,
		lagrange1:     lagrange1,
		dPrepared:     dPrepared,
	}
	srs.fk = buildFKTable(srs)
	srs.shiftBasis = buildShiftBasis(srs)
	return srs, nil
}

// lagrangeImages computes L_i(tau)*G1 for every i, from tau^j*G1 for
// every j, via the identity: the Lagrange basis coefficients of a
// polynomial evaluated on the FFT domain are exactly the inverse DFT of
// its monomial coefficients. Applying InvFFT "in the exponent" directly
// to the tau-power vector therefore yields the Lagrange commitment
// images without ever touching tau itself.
func lagrangeImages(g1Pow []bls12381.G1Affine, domain *fft.Domain) []bls12381.G1Affine {
	n := domain.Cardinality
	padded := make([]bls12381.G1Jac, n)
	for i := range padded {
		if i < len(g1Pow) {
			padded[i].FromAffine(&g1Pow[i])
		} else {
			padded[i].Set(&jacIdentityG1)
		}
	}
	groupfft.InvFFT(padded, domain.Generator)
	out := make([]bls12381.G1Affine, n)
	for i := range out {
		out[i].FromJacobian(&padded[i])
	}
	return out
}

var jacIdentityG1 = func() bls12381.G1Jac {
	var z bls12381.G1Jac
	z.FromAffine(&bls12381.G1Affine{})
	return z
}()
