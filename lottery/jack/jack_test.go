package jack

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b-wagn/jackpot/internal/entropy"
	"github.com/b-wagn/jackpot/lottery"
)

func testParams(t testing.TB, numSlots int, k uint64) *Parameters {
	rng := entropy.Deterministic([]byte("jack-test-seed"), t.Name())
	p, err := Setup(rng, numSlots, k)
	require.NoError(t, err)
	return p
}

func TestGenVerifyKey(t *testing.T) {
	params := testParams(t, 8, 1)
	rng := entropy.Deterministic([]byte("jack-gen"), t.Name())
	pk, _, err := Gen(rng, params)
	require.NoError(t, err)
	require.True(t, VerifyKey(pk))
}

func TestSingleParticipantWinsEveryRoundWhenKIsOne(t *testing.T) {
	params := testParams(t, 8, 1)
	rng := entropy.Deterministic([]byte("jack-single"), t.Name())
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
		genRng := entropy.Deterministic([]byte("jack-multi-participant"), strconv.Itoa(i))
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

func TestAggregateRejectsDuplicateParticipantIDs(t *testing.T) {
	params := testParams(t, 8, 1)
	rng := entropy.Deterministic([]byte("jack-dup"), t.Name())
	_, sk, err := Gen(rng, params)
	require.NoError(t, err)

	seed := lottery.Seed{Round: 3, Beacon: []byte("beacon-3")}
	ticket, err := GetTicket(params, sk, seed)
	require.NoError(t, err)

	_, err = Aggregate(params, seed, []int{0, 0}, []Ticket{ticket, ticket})
	require.Error(t, err)
}

func TestVerifyRejectsWrongRoundSeed(t *testing.T) {
	params := testParams(t, 8, 1)
	rng := entropy.Deterministic([]byte("jack-wrong-round"), t.Name())
	pk, sk, err := Gen(rng, params)
	require.NoError(t, err)

	seed := lottery.Seed{Round: 1, Beacon: []byte("beacon-a")}
	ticket, err := GetTicket(params, sk, seed)
	require.NoError(t, err)
	agg, err := Aggregate(params, seed, []int{0}, []Ticket{ticket})
	require.NoError(t, err)

	wrongSeed := lottery.Seed{Round: 2, Beacon: []byte("beacon-b")}
	ok, err := Verify(params, []PublicKey{pk}, wrongSeed, agg)
	require.False(t, err == nil && ok, "verifying against the wrong round's seed must not succeed")
}

func TestGetTicketReturnsErrNoTicketWhenNotWinning(t *testing.T) {
	params := testParams(t, 8, 1000000)
	rng := entropy.Deterministic([]byte("jack-loser"), t.Name())
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
