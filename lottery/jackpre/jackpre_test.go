package jackpre

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b-wagn/jackpot/internal/entropy"
	"github.com/b-wagn/jackpot/lottery"
	"github.com/b-wagn/jackpot/vc"
)

func testParams(t testing.TB, numSlots int, k uint64) *Parameters {
	rng := entropy.Deterministic([]byte("jackpre-test-seed"), t.Name())
	p, err := Setup(rng, numSlots, k)
	require.NoError(t, err)
	return p
}

func TestGenVerifyKey(t *testing.T) {
	params := testParams(t, 8, 1)
	rng := entropy.Deterministic([]byte("jackpre-gen"), t.Name())
	pk, _, err := Gen(rng, params)
	require.NoError(t, err)
	require.True(t, VerifyKey(pk))
}

func TestSingleParticipantWinsEveryRoundWhenKIsOne(t *testing.T) {
	params := testParams(t, 8, 1)
	rng := entropy.Deterministic([]byte("jackpre-single"), t.Name())
	pk, sk, err := Gen(rng, params)
	require.NoError(t, err)

	seed := lottery.Seed{Round: 1, Beacon: []byte("beacon-1")}
	ticket, err := GetTicket(params, sk, seed)
	require.NoError(t, err)

	agg, err := Aggregate(params, seed, []int{0}, []Ticket{ticket})
	require.NoError(t, err)

	ok, err := Verify(params, []PublicKey{pk}, seed, agg)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMultiParticipantAggregateVerifyRoundTrip(t *testing.T) {
	params := testParams(t, 8, 1)
	const numParticipants = 4

	pks := make([]PublicKey, numParticipants)
	tickets := make([]Ticket, numParticipants)
	ids := make([]int, numParticipants)

	seed := lottery.Seed{Round: 7, Beacon: []byte("beacon-7")}
	for i := 0; i < numParticipants; i++ {
		genRng := entropy.Deterministic([]byte("jackpre-multi-participant"), strconv.Itoa(i))
		pk, sk, err := Gen(genRng, params)
		require.NoError(t, err)
		ticket, err := GetTicket(params, sk, seed)
		require.NoError(t, err)

		pks[i] = pk
		tickets[i] = ticket
		ids[i] = i
	}

	agg, err := Aggregate(params, seed, ids, tickets)
	require.NoError(t, err)

	ok, err := Verify(params, pks, seed, agg)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGetTicketReturnsErrNoTicketWhenNotWinning(t *testing.T) {
	params := testParams(t, 8, 1000000)
	rng := entropy.Deterministic([]byte("jackpre-loser"), t.Name())
	_, sk, err := Gen(rng, params)
	require.NoError(t, err)

	var sawNoTicket bool
	for round := uint64(0); round < 16; round++ {
		seed := lottery.Seed{Round: round, Beacon: []byte("beacon-loser")}
		_, err := GetTicket(params, sk, seed)
		if err != nil {
			require.ErrorIs(t, err, ErrNoTicket)
			sawNoTicket = true
		}
	}
	require.True(t, sawNoTicket, "expected at least one non-winning round out of 16 at 1-in-a-million odds")
}

func TestAgreesWithJackOnSameSRS(t *testing.T) {
	// jack and jackpre are two opening strategies over the same vc
	// primitives; the same secret vector, opened the slow way versus the
	// FK+shift way, must produce the same ticket, and that ticket must
	// verify against the round-shifted public key.
	params := testParams(t, 8, 1)
	rng := entropy.Deterministic([]byte("jackpre-agree"), t.Name())
	pk, sk, err := Gen(rng, params)
	require.NoError(t, err)

	seed := lottery.Seed{Round: 42, Beacon: []byte("beacon-42")}
	ticket, err := GetTicket(params, sk, seed)
	require.NoError(t, err)

	idx := ticket.Index
	shift := lottery.HashSeedToField("jack/shift", seed)

	// The slow way, as jack.GetTicket does it: shift the secret vector
	// itself and reopen it from scratch.
	shifted := make(vc.Vector, params.SRS.MessageLength)
	for i := range shifted {
		shifted[i], _, err = sk.table.At(i)
		require.NoError(t, err)
	}
	shifted[idx].Add(&shifted[idx], &shift)
	slowY, slowPi, err := params.SRS.Open(shifted, idx)
	require.NoError(t, err)
	require.True(t, slowY.Equal(&ticket.Value))
	require.Equal(t, slowPi.Bytes(), ticket.Proof.Bytes())

	shiftedCommitment, err := params.SRS.ShiftValue(pk.Commitment, idx, shift)
	require.NoError(t, err)

	ok, err := params.SRS.Verify(shiftedCommitment, idx, ticket.Value, ticket.Proof)
	require.NoError(t, err)
	require.True(t, ok)
}
