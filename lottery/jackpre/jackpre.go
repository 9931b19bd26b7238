// Package jackpre is the Feist-Khovratovich-optimized sibling of
// package jack: the same lottery reduction, but every participant's
// opening proofs for every possible round index are batch-precomputed
// once at key-generation time, and GetTicket looks one up and applies
// the round's shift in O(1) group operations instead of repeating a
// polynomial division every round.
package jackpre

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
// shares.
type Parameters struct {
	SRS *vc.SRS
	Win lottery.WinningSet
}

// Setup builds fresh public parameters, identical in shape to
// jack.Setup.
func Setup(rng entropy.Reader, numSlots int, k uint64) (*Parameters, error) {
	srs, err := vc.Setup(rng, numSlots)
	if err != nil {
		return nil, err
	}
	return &Parameters{SRS: srs, Win: lottery.NewWinningSet(k)}, nil
}

// PublicKey is a participant's commitment to their private lottery
// vector.
type PublicKey struct {
	Commitment vc.Commitment
}

// Bytes returns the canonical wire encoding.
func (pk PublicKey) Bytes() []byte { return pk.Commitment.Bytes() }

// SecretKey holds a participant's private lottery vector and the FK
// table of every index's opening proof against the unshifted vector,
// computed once so GetTicket never redivides a polynomial.
type SecretKey struct {
	table *vc.OpeningTable
}

// Gen draws a fresh secret vector, commits to it, and runs the FK
// batch-opening precomputation over it once.
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
	table, err := params.SRS.Preprocess(v)
	if err != nil {
		return PublicKey{}, SecretKey{}, err
	}
	logger.Logger().Debug().Str("session", lottery.NewSessionID()).Int("messageLength", n).
		Msg("jackpre: precomputed opening table for new key")
	return PublicKey{Commitment: com}, SecretKey{table: table}, nil
}

// VerifyKey checks that a public key is well-formed.
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

func roundIndex(params *Parameters, seed lottery.Seed) int {
	h := lottery.HashSeedToField("jack/index", seed)
	var bi big.Int
	h.BigInt(&bi)
	bi.Mod(&bi, big.NewInt(int64(params.SRS.MessageLength)))
	return int(bi.Int64())
}

func roundShift(seed lottery.Seed) bls12381fr.Element {
	return lottery.HashSeedToField("jack/shift", seed)
}

// GetTicket looks up this round's index in sk's precomputed table and
// applies the round's public shift in O(1), rather than reopening the
// vector from scratch.
func GetTicket(params *Parameters, sk SecretKey, seed lottery.Seed) (Ticket, error) {
	idx := roundIndex(params, seed)
	shift := roundShift(seed)

	baseY, baseProof, err := sk.table.At(idx)
	if err != nil {
		return Ticket{}, err
	}

	y := baseY
	y.Add(&y, &shift)
	if !params.Win.Contains(y) {
		return Ticket{}, ErrNoTicket
	}

	pi, err := params.SRS.ShiftOpening(baseProof, idx, shift)
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{Index: idx, Value: y, Proof: pi}, nil
}

// AggregateTicket combines any number of winning tickets from the same
// round into one proof.
type AggregateTicket struct {
	Index          int
	ParticipantIDs []int
	Ys             []bls12381fr.Element
	Proof          vc.AggregatedOpening
}

// Aggregate combines a set of per-round tickets, keyed by participant
// index, into a single AggregateTicket.
func Aggregate(params *Parameters, seed lottery.Seed, participantIDs []int, tickets []Ticket) (*AggregateTicket, error) {
	if len(participantIDs) != len(tickets) {
		return nil, errors.Errorf("jackpre: %d participant ids, %d tickets", len(participantIDs), len(tickets))
	}
	if len(tickets) == 0 {
		return nil, errors.New("jackpre: cannot aggregate zero tickets")
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
// keys.
func Verify(params *Parameters, pks []PublicKey, seed lottery.Seed, agg *AggregateTicket) (bool, error) {
	if len(agg.ParticipantIDs) != len(agg.Ys) {
		return false, errors.New("jackpre: malformed aggregate ticket: id/value length mismatch")
	}
	if !slices.IsSorted(agg.ParticipantIDs) {
		return false, errors.New("jackpre: malformed aggregate ticket: participant ids not sorted")
	}
	wantIdx := roundIndex(params, seed)
	if agg.Index != wantIdx {
		return false, errors.Errorf("jackpre: aggregate ticket index %d, want %d", agg.Index, wantIdx)
	}

	seen := bitset.New(uint(len(pks)))
	shift := roundShift(seed)
	coms := make([]vc.Commitment, len(agg.ParticipantIDs))
	for j, pid := range agg.ParticipantIDs {
		if pid < 0 || pid >= len(pks) {
			return false, errors.Errorf("jackpre: participant id %d out of range [0,%d)", pid, len(pks))
		}
		if seen.Test(uint(pid)) {
			return false, errors.Errorf("jackpre: duplicate participant id %d", pid)
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
