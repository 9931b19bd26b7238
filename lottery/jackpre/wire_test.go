package jackpre

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b-wagn/jackpot/internal/entropy"
	"github.com/b-wagn/jackpot/lottery"
)

func TestAggregateTicketWireRoundTrip(t *testing.T) {
	params := testParams(t, 8, 1)
	const numParticipants = 4

	pks := make([]PublicKey, numParticipants)
	tickets := make([]Ticket, numParticipants)
	ids := make([]int, numParticipants)

	seed := lottery.Seed{Round: 5, Beacon: []byte("beacon-wire")}
	for i := 0; i < numParticipants; i++ {
		rng := entropy.Deterministic([]byte("jackpre-wire"), strconv.Itoa(i))
		pk, sk, err := Gen(rng, params)
		require.NoError(t, err)
		ticket, err := GetTicket(params, sk, seed)
		require.NoError(t, err)
		pks[i] = pk
		tickets[i] = ticket
		ids[i] = i
	}

	agg, err := Aggregate(params, seed, ids, tickets)
	require.NoError(t, err)

	data, err := agg.Marshal(numParticipants)
	require.NoError(t, err)

	decoded, err := UnmarshalAggregateTicket(data, numParticipants)
	require.NoError(t, err)
	require.Equal(t, agg.ParticipantIDs, decoded.ParticipantIDs)

	ok, err := Verify(params, pks, seed, decoded)
	require.NoError(t, err)
	require.True(t, ok)
}
