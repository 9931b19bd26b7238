// Package lottery defines the shared vocabulary every lottery
// implementation in this module speaks: a Seed drawn each round from an
// external beacon, a winning-set predicate over hashed tickets, and the
// sentinel error a participant's GetTicket returns when they did not
// win this round.
//
// There is deliberately no single Go interface type binding jack,
// jackpre and blshash together: each scheme's Parameters, PublicKey,
// SecretKey and Ticket have genuinely different shapes (a KZG
// commitment and opening versus a BLS public key and signature), so
// forcing a shared interface would mean routing every call through
// interface{} and losing the type safety a concrete per-scheme API
// gives callers. Instead every scheme package exposes the same method
// names - Setup, Gen, VerifyKey, SampleSeed, GetTicket, Aggregate,
// Verify - over its own types, the way crypto/cipher's block cipher
// implementations share a shape without sharing a single interface.
package lottery

import "github.com/pkg/errors"

// ErrNoTicket is returned by GetTicket when the caller's hashed value
// does not land in the round's winning set. Callers must check for it
// rather than treat it as a failure: not winning is an expected, common
// outcome, not an error condition that surfaces a stack trace.
var ErrNoTicket = errors.New("lottery: not a winner this round")

// Seed is the externally supplied per-round randomness every
// participant and the aggregator derive their challenge from. Beacon is
// whatever the external randomness source published for Round; it is
// hashed into a field element through HashToField, never used as a
// field element directly.
type Seed struct {
	Round  uint64
	Beacon []byte
}
