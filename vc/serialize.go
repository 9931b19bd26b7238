package vc

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// CommitmentFromBytes decodes a compressed G1 point as produced by
// Commitment.Bytes, rejecting anything off-curve or outside the prime
// order subgroup rather than returning a point an attacker could use
// to forge a pairing check.
func CommitmentFromBytes(b []byte) (Commitment, error) {
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return Commitment{}, malformedPointErrorf("decoding commitment: %v", err)
	}
	if !p.IsInSubGroup() {
		return Commitment{}, malformedPointErrorf("commitment point not in subgroup")
	}
	return Commitment{point: p}, nil
}

// OpeningFromBytes decodes a compressed G1 point as produced by
// Opening.Bytes.
func OpeningFromBytes(b []byte) (Opening, error) {
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return Opening{}, malformedPointErrorf("decoding opening: %v", err)
	}
	if !p.IsInSubGroup() {
		return Opening{}, malformedPointErrorf("opening point not in subgroup")
	}
	return Opening{point: p}, nil
}

// AggregatedOpeningFromBytes decodes a compressed G1 point as produced
// by AggregatedOpening.Bytes.
func AggregatedOpeningFromBytes(b []byte) (AggregatedOpening, error) {
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return AggregatedOpening{}, malformedPointErrorf("decoding aggregated opening: %v", err)
	}
	if !p.IsInSubGroup() {
		return AggregatedOpening{}, malformedPointErrorf("aggregated opening point not in subgroup")
	}
	return AggregatedOpening{point: p}, nil
}
