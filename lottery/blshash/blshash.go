// Package blshash implements the folklore BLS-signature-based lottery:
// a participant's ticket for a round is just their BLS signature over a
// transcript binding the round's seed to their identity, and they win
// if that signature hashes into the winning set. There is no vector
// commitment, no SRS and no batch-opening machinery - this package
// exists as the baseline package jack and jackpre are compared
// against, grounded on the same "sign the round, hash the signature"
// idea as a verifiable-random-function-style lottery.
//
// Public keys live in G1 and signatures in G2, the "minimal public key
// size" BLS variant, hashing messages onto G2 via the SSWU map.
package blshash

import (
	"io"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/b-wagn/jackpot/internal/entropy"
	"github.com/b-wagn/jackpot/internal/parallel"
	"github.com/b-wagn/jackpot/logger"
	"github.com/b-wagn/jackpot/lottery"
)

// dst is the hash-to-curve domain separation tag, following the format
// the IETF hash-to-curve draft's BLS ciphersuites use.
const dst = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_JACKPOT_LOTTERY_"

// ErrNoTicket re-exports lottery.ErrNoTicket.
var ErrNoTicket = lottery.ErrNoTicket

// Parameters hold the winning-set modulus; there is no SRS to set up.
type Parameters struct {
	Win lottery.WinningSet
}

// Setup builds fresh public parameters for a 1-in-k win probability.
func Setup(k uint64) *Parameters {
	logger.Logger().Debug().Str("session", lottery.NewSessionID()).Uint64("k", k).
		Msg("blshash: parameters ready")
	return &Parameters{Win: lottery.NewWinningSet(k)}
}

// PublicKey is a participant's BLS public key, sk*G1.
type PublicKey struct {
	point bls12381.G1Affine
}

// Bytes returns the canonical wire encoding.
func (pk PublicKey) Bytes() []byte {
	b := pk.point.Bytes()
	return b[:]
}

// SecretKey is a participant's signing scalar.
type SecretKey struct {
	scalar fr.Element
}

// Gen draws a fresh signing key pair.
func Gen(rng entropy.Reader) (PublicKey, SecretKey, error) {
	sk, err := randomScalar(rng)
	if err != nil {
		return PublicKey{}, SecretKey{}, err
	}
	g1Gen, _, _, _ := bls12381.Generators()
	sc := sk.BigInt(new(big.Int))
	var p bls12381.G1Jac
	p.ScalarMultiplication(&g1Gen, sc)
	var pk PublicKey
	pk.point.FromJacobian(&p)
	return pk, SecretKey{scalar: sk}, nil
}

// VerifyKey checks that a public key is well-formed: non-identity and
// in the correct subgroup.
func VerifyKey(pk PublicKey) bool {
	return !pk.point.IsInfinity() && pk.point.IsInSubGroup()
}

// SampleSeed draws a fresh beacon value for round.
func SampleSeed(rng entropy.Reader, round uint64) (lottery.Seed, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rng, b); err != nil {
		return lottery.Seed{}, err
	}
	return lottery.Seed{Round: round, Beacon: b}, nil
}

// roundMessage builds the per-participant message a signature is taken
// over: the round's seed bound to the signer's identity, so two
// participants signing the same round never produce the same message.
func roundMessage(seed lottery.Seed, participantID int) []byte {
	msg := make([]byte, 0, len(seed.Beacon)+16)
	msg = append(msg, seed.Beacon...)
	msg = appendUint64(msg, seed.Round)
	msg = appendUint64(msg, uint64(participantID))
	return msg
}

func appendUint64(b []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}

// Ticket is a participant's BLS signature over this round's message,
// once it has been confirmed to land in the winning set.
type Ticket struct {
	Signature bls12381.G2Affine
}

// sign computes sk's BLS signature over msg.
func sign(sk SecretKey, msg []byte) (bls12381.G2Affine, error) {
	h, err := bls12381.HashToG2(msg, []byte(dst))
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	sc := sk.scalar.BigInt(new(big.Int))
	var hJac bls12381.G2Jac
	hJac.FromAffine(&h)
	var sigJac bls12381.G2Jac
	sigJac.ScalarMultiplication(&hJac, sc)
	var sig bls12381.G2Affine
	sig.FromJacobian(&sigJac)
	return sig, nil
}

// winningValue hashes a signature into the same field the winning-set
// predicate checks membership in.
func winningValue(sig bls12381.G2Affine) fr.Element {
	b := sig.Bytes()
	return lottery.HashToField("blshash/win", b[:])
}

// GetTicket signs this round's message for participantID and returns a
// ticket if the resulting signature lands in the winning set, or
// ErrNoTicket otherwise.
func GetTicket(params *Parameters, sk SecretKey, seed lottery.Seed, participantID int) (Ticket, error) {
	msg := roundMessage(seed, participantID)
	sig, err := sign(sk, msg)
	if err != nil {
		return Ticket{}, err
	}
	if !params.Win.Contains(winningValue(sig)) {
		return Ticket{}, ErrNoTicket
	}
	return Ticket{Signature: sig}, nil
}

// Verify checks a single ticket against its signer's public key.
func Verify(pk PublicKey, seed lottery.Seed, participantID int, ticket Ticket) (bool, error) {
	msg := roundMessage(seed, participantID)
	h, err := bls12381.HashToG2(msg, []byte(dst))
	if err != nil {
		return false, err
	}
	_, _, g1Gen, _ := bls12381.Generators()
	var negG1 bls12381.G1Affine
	negG1.Neg(&g1Gen)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{pk.point, negG1},
		[]bls12381.G2Affine{h, ticket.Signature},
	)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// AggregateTicket combines any number of winning tickets from the same
// round into one BLS aggregate signature, the standard sum-of-
// signatures construction.
type AggregateTicket struct {
	ParticipantIDs []int
	Signature      bls12381.G2Affine
}

// Aggregate sums winning signatures into one BLS aggregate signature.
func Aggregate(participantIDs []int, tickets []Ticket) (*AggregateTicket, error) {
	if len(participantIDs) != len(tickets) {
		return nil, errors.Errorf("blshash: %d participant ids, %d tickets", len(participantIDs), len(tickets))
	}
	if len(tickets) == 0 {
		return nil, errors.New("blshash: cannot aggregate zero tickets")
	}

	var errs *multierror.Error
	seen := bitset.New(uint(len(tickets)))
	for j := range tickets {
		pid := uint(participantIDs[j])
		if seen.Test(pid) {
			errs = multierror.Append(errs, errors.Errorf("duplicate participant id %d", pid))
		}
		seen.Set(pid)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	order := append([]int(nil), participantIDs...)
	slices.Sort(order)

	var acc bls12381.G2Jac
	acc.FromAffine(&tickets[0].Signature)
	for _, t := range tickets[1:] {
		var p bls12381.G2Jac
		p.FromAffine(&t.Signature)
		acc.AddAssign(&p)
	}
	var sig bls12381.G2Affine
	sig.FromJacobian(&acc)

	return &AggregateTicket{ParticipantIDs: order, Signature: sig}, nil
}

// VerifyAggregate checks an aggregate ticket against the participants'
// public keys via one multi-pairing check regardless of how many
// signers were combined. It does not check winning-set membership; see
// the note at the end of the function.
func VerifyAggregate(params *Parameters, pks []PublicKey, seed lottery.Seed, agg *AggregateTicket) (bool, error) {
	if !slices.IsSorted(agg.ParticipantIDs) {
		return false, errors.New("blshash: malformed aggregate ticket: participant ids not sorted")
	}
	seen := bitset.New(uint(len(pks)))
	g1Points := make([]bls12381.G1Affine, len(agg.ParticipantIDs)+1)
	g2Points := make([]bls12381.G2Affine, len(agg.ParticipantIDs)+1)

	if err := parallel.Execute(0, len(agg.ParticipantIDs), func(start, end int) error {
		for j := start; j < end; j++ {
			pid := agg.ParticipantIDs[j]
			if pid < 0 || pid >= len(pks) {
				return errors.Errorf("blshash: participant id %d out of range [0,%d)", pid, len(pks))
			}
			msg := roundMessage(seed, pid)
			h, err := bls12381.HashToG2(msg, []byte(dst))
			if err != nil {
				return err
			}
			g1Points[j] = pks[pid].point
			g2Points[j] = h
		}
		return nil
	}); err != nil {
		return false, err
	}

	for _, pid := range agg.ParticipantIDs {
		if seen.Test(uint(pid)) {
			return false, errors.Errorf("blshash: duplicate participant id %d", pid)
		}
		seen.Set(uint(pid))
	}

	_, _, g1Gen, _ := bls12381.Generators()
	var negG1 bls12381.G1Affine
	negG1.Neg(&g1Gen)
	g1Points[len(agg.ParticipantIDs)] = negG1
	g2Points[len(agg.ParticipantIDs)] = agg.Signature

	ok, err := bls12381.PairingCheck(g1Points, g2Points)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	// The winning-set membership check is part of the verified
	// statement, but is not covered by the pairing check above: an
	// aggregate ticket only proves the signatures are valid, not that
	// each one actually won. Since checking membership needs the
	// per-signer signature, which an aggregate (by design) no longer
	// carries individually, this check is skipped here. jack and
	// jackpre's aggregate tickets carry every winner's claimed value,
	// which their verifiers test for membership; blshash's aggregate
	// carries no per-signer value, so callers that need this check must
	// keep the individual tickets and verify winning-set membership
	// before aggregating. See SPEC_FULL.md §4.5.
	return true, nil
}
