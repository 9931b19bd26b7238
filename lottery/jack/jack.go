// Package jack implements the baseline KZG-vector-commitment-based
// lottery reduction: every participant commits once to a private
// vector of random field elements, and each round's public seed picks
// one shared index into every participant's vector. A participant wins
// the round if their value at that index, shifted by a round-specific
// public offset, falls in the winning set; winners' openings at the
// shared index combine into a single aggregate proof regardless of how
// many of them there are.
//
// This package recomputes its opening proof from scratch every round
// (an O(n log n) polynomial division); package jackpre implements the
// same scheme with the Feist-Khovratovich batch-opening precomputation
// wired in, trading Gen-time work for O(1) GetTicket calls.
package jack

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/b-wagn/jackpot/internal/entropy"
	"github.com/b-wagn/jackpot/logger"
	"github.com/b-wagn/jackpot/lottery"
	"github.com/b-wagn/jackpot/vc"
)

// ErrNoTicket re-exports lottery.ErrNoTicket so callers importing only
// this package can check for it without an extra import.
var ErrNoTicket = lottery.ErrNoTicket

// Parameters are the public parameters every participant and verifier
// shares: a KZG structured reference string sized to the number of
// distinct round slots, and the winning-set modulus.
type Parameters struct {
	SRS *vc.SRS
	Win lottery.WinningSet
	k   uint64
}

// Setup builds fresh public parameters. numSlots is the number of
// distinct per-round indices, each round's index being its seed hashed
// modulo numSlots (it must be a power of two, the same constraint
// vc.Setup enforces); k sets a 1-in-k win probability.
func Setup(rng entropy.Reader, numSlots int, k uint64) (*Parameters, error) {
	srs, err := vc.Setup(rng, numSlots)
	if err != nil {
		return nil, err
	}
	logger.Logger().Debug().Str("session", lottery.NewSessionID()).Uint64("k", k).
		Msg("jack: parameters ready")
	return &Parameters{SRS: srs, Win: lottery.NewWinningSet(k), k: k}, nil
}

// PublicKey is a participant's commitment to their private lottery
// vector.
type PublicKey struct {
	Commitment vc.Commitment
}

// Bytes returns the canonical wire encoding.
func (pk PublicKey) Bytes() []byte { return pk.Commitment.Bytes() }

// SecretKey holds a participant's private lottery vector. GetTicket
// reopens it fresh every round.
type SecretKey struct {
	vector vc.Vector
}

// Gen draws a fresh secret vector and derives the matching public key.
func Gen(rng entropy.Reader, params *Parameters) (PublicKey, SecretKey, error) {
	n := params.SRS.MessageLength
	v, err := randomVector(rng, n)
	if err != nil {
		return PublicKey{}, SecretKey{}, err
	}
	com, err := params.SRS.Commit(v)
	if err != nil {
		return PublicKey{}, SecretKey{}, err
	}
	return PublicKey{Commitment: com}, SecretKey{vector: v}, nil
}

// VerifyKey checks that a public key is well-formed: a non-identity
// point in the correct subgroup. It does not (and cannot) check that
// the key's owner actually knows the committed vector; that is implicit
// in being able to produce winning tickets at all.
func VerifyKey(pk PublicKey) bool {
	return !pk.Commitment.IsIdentity()
}

// SampleSeed draws a fresh beacon value for round.
func SampleSeed(rng entropy.Reader, round uint64) (lottery.Seed, error) {
	b := make([]byte, 32)
	if _, err := rngRead(rng, b); err != nil {
		return lottery.Seed{}, err
	}
	return lottery.Seed{Round: round, Beacon: b}, nil
}

// Ticket is a single participant's proof that their lottery draw won
// this round.
type Ticket struct {
	Index int
	Value bls12381fr.Element
	Proof vc.Opening
}

// roundIndex derives this round's shared slot index from the seed,
// the same computation every participant and the verifier perform
// independently.
func roundIndex(params *Parameters, seed lottery.Seed) int {
	h := lottery.HashSeedToField("jack/index", seed)
	var bi big.Int
	h.BigInt(&bi)
	bi.Mod(&bi, big.NewInt(int64(params.SRS.MessageLength)))
	return int(bi.Int64())
}

// roundShift derives this round's public shift: it is added to every
// participant's raw value at the shared index before the winning-set
// check, so that a participant's chance of winning depends on the
// round rather than on a fixed property of their static secret vector.
func roundShift(seed lottery.Seed) bls12381fr.Element {
	return lottery.HashSeedToField("jack/shift", seed)
}

// GetTicket computes the caller's ticket for this round, or
// ErrNoTicket if their shifted value does not land in the winning set.
func GetTicket(params *Parameters, sk SecretKey, seed lottery.Seed) (Ticket, error) {
	idx := roundIndex(params, seed)
	shift := roundShift(seed)

	shifted := make(vc.Vector, len(sk.vector))
	copy(shifted, sk.vector)
	shifted[idx].Add(&shifted[idx], &shift)

	y, pi, err := params.SRS.Open(shifted, idx)
	if err != nil {
		return Ticket{}, err
	}
	if !params.Win.Contains(y) {
		return Ticket{}, ErrNoTicket
	}
	return Ticket{Index: idx, Value: y, Proof: pi}, nil
}

// AggregateTicket combines any number of winning tickets from the same
// round into one proof. ParticipantIDs[j] names whose public key Ys[j]
// and the shared Proof correspond to.
type AggregateTicket struct {
	Index          int
	ParticipantIDs []int
	Ys             []bls12381fr.Element
	Proof          vc.AggregatedOpening
}

// Aggregate combines a set of per-round tickets, keyed by participant
// index into pks, into a single AggregateTicket.
func Aggregate(params *Parameters, seed lottery.Seed, participantIDs []int, tickets []Ticket) (*AggregateTicket, error) {
	if len(participantIDs) != len(tickets) {
		return nil, errors.Errorf("jack: %d participant ids, %d tickets", len(participantIDs), len(tickets))
	}
	if len(tickets) == 0 {
		return nil, errors.New("jack: cannot aggregate zero tickets")
	}
	idx := roundIndex(params, seed)

	var errs *multierror.Error
	seen := bitset.New(uint(len(tickets)))
	for j, t := range tickets {
		if t.Index != idx {
			errs = multierror.Append(errs, errors.Errorf("ticket %d: index %d, want %d", j, t.Index, idx))
		}
		pid := uint(participantIDs[j])
		if seen.Test(pid) {
			errs = multierror.Append(errs, errors.Errorf("duplicate participant id %d", pid))
		}
		seen.Set(pid)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	order := make([]int, len(tickets))
	for j := range order {
		order[j] = j
	}
	slices.SortFunc(order, func(a, b int) int {
		return participantIDs[a] - participantIDs[b]
	})

	ids := make([]int, len(tickets))
	ys := make([]bls12381fr.Element, len(tickets))
	openings := make([]vc.Opening, len(tickets))
	for dst, src := range order {
		ids[dst] = participantIDs[src]
		ys[dst] = tickets[src].Value
		openings[dst] = tickets[src].Proof
	}

	proof, err := vc.Aggregate(openings)
	if err != nil {
		return nil, err
	}

	return &AggregateTicket{
		Index:          idx,
		ParticipantIDs: ids,
		Ys:             ys,
		Proof:          proof,
	}, nil
}

// Verify checks an AggregateTicket against the participants' public
// keys. pks must be indexed by the same participant ids Aggregate was
// given.
func Verify(params *Parameters, pks []PublicKey, seed lottery.Seed, agg *AggregateTicket) (bool, error) {
	if len(agg.ParticipantIDs) != len(agg.Ys) {
		return false, errors.New("jack: malformed aggregate ticket: id/value length mismatch")
	}
	if !slices.IsSorted(agg.ParticipantIDs) {
		return false, errors.New("jack: malformed aggregate ticket: participant ids not sorted")
	}
	wantIdx := roundIndex(params, seed)
	if agg.Index != wantIdx {
		return false, errors.Errorf("jack: aggregate ticket index %d, want %d", agg.Index, wantIdx)
	}

	seen := bitset.New(uint(len(pks)))
	shift := roundShift(seed)
	coms := make([]vc.Commitment, len(agg.ParticipantIDs))
	for j, pid := range agg.ParticipantIDs {
		if pid < 0 || pid >= len(pks) {
			return false, errors.Errorf("jack: participant id %d out of range [0,%d)", pid, len(pks))
		}
		if seen.Test(uint(pid)) {
			return false, errors.Errorf("jack: duplicate participant id %d", pid)
		}
		seen.Set(uint(pid))
		if !params.Win.Contains(agg.Ys[j]) {
			return false, nil
		}
		shifted, err := params.SRS.ShiftValue(pks[pid].Commitment, agg.Index, shift)
		if err != nil {
			return false, err
		}
		coms[j] = shifted
	}

	return params.SRS.VerifyAggregate(agg.Index, coms, agg.Ys, agg.Proof)
}
