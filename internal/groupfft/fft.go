/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package groupfft implements the number-theoretic transform "in the
// exponent": the same Cooley-Tukey butterfly network used by
// github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft, except the
// values being transformed are G1 group elements and the twiddle
// factors act by scalar multiplication instead of field multiplication.
//
// This is the one primitive the SRS and the FK batch-opening algorithm
// need beyond ordinary curve and pairing arithmetic (see DESIGN.md).
package groupfft

import (
	"math/big"
	"math/bits"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/b-wagn/jackpot/internal/parallel"
)

// FFT evaluates the polynomial whose coefficients are the discrete logs
// of a (i.e. a[i] = c_i * G for some scalars c_i) at every power of w:
// a[j] is overwritten with Sum_i c_i * w^{i*j} * G. len(a) must be a
// power of two and w a len(a)-th root of unity in fr.
//
// This mirrors fft.Domain.FFT for field elements, but the twiddle
// multiplication is a scalar multiplication of a curve point rather
// than a field multiplication.
func FFT(a []bls12381.G1Jac, w fr.Element) {
	bitReverse(a)
	butterflies(a, w)
}

// InvFFT is the inverse of FFT: given a[j] = Sum_i c_i * w^{i*j} * G for
// j in [0,len(a)), it recovers b[i] = c_i * G.
func InvFFT(a []bls12381.G1Jac, w fr.Element) {
	var wInv fr.Element
	wInv.Inverse(&w)
	bitReverse(a)
	butterflies(a, wInv)

	var nInv fr.Element
	nInv.SetUint64(uint64(len(a)))
	nInv.Inverse(&nInv)
	nInvBig := nInv.BigInt(new(big.Int))
	_ = parallel.Execute(0, len(a), func(start, end int) error {
		for i := start; i < end; i++ {
			a[i].ScalarMultiplication(&a[i], nInvBig)
		}
		return nil
	})
}

// iterative, in-place Cooley-Tukey decimation-in-time butterfly network
// over bit-reversed input. Stage s combines pairs that are 2^s apart,
// using w^{(n/2^{s+1})*k} as the twiddle for the k-th pair in a block -
// the standard layout used by fr/fft.Domain, specialized to group
// elements with scalar (instead of field) twiddle multiplication.
func butterflies(a []bls12381.G1Jac, w fr.Element) {
	n := len(a)
	if n <= 1 {
		return
	}
	logN := bits.TrailingZeros(uint(n))

	// twiddles[s] holds w^{(n/2^{s+1}) * k} for k in [0, 2^s)
	for s := 0; s < logN; s++ {
		half := 1 << s
		step := n / (2 * half)
		twiddles := make([]fr.Element, half)
		twiddles[0].SetOne()
		var base fr.Element
		base.Exp(w, big.NewInt(int64(step)))
		for k := 1; k < half; k++ {
			twiddles[k].Mul(&twiddles[k-1], &base)
		}
		blockLen := 2 * half
		nbBlocks := n / blockLen
		_ = parallel.Execute(0, nbBlocks, func(start, end int) error {
			for b := start; b < end; b++ {
				off := b * blockLen
				for k := 0; k < half; k++ {
					x := a[off+k]
					var y bls12381.G1Jac
					tw := twiddles[k].BigInt(new(big.Int))
					y.ScalarMultiplication(&a[off+k+half], tw)
					a[off+k].Set(&x)
					a[off+k].AddAssign(&y)
					a[off+k+half].Set(&x)
					a[off+k+half].SubAssign(&y)
				}
			}
			return nil
		})
	}
}

func bitReverse(a []bls12381.G1Jac) {
	n := uint(len(a))
	shift := uint(bits.UintSize) - uint(bits.TrailingZeros(n))
	for i := uint(0); i < n; i++ {
		j := bits.Reverse(i) >> shift
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
}
