package lottery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParticipantSetRoundTrip(t *testing.T) {
	ids := []int{0, 3, 7, 8}
	encoded, err := EncodeParticipantSet(ids, 10)
	require.NoError(t, err)

	decoded, err := DecodeParticipantSet(encoded, 10)
	require.NoError(t, err)
	require.Equal(t, ids, decoded)
}

func TestEncodeParticipantSetRejectsOutOfRange(t *testing.T) {
	_, err := EncodeParticipantSet([]int{10}, 10)
	require.Error(t, err)
}

func TestNewSessionIDIsNonEmptyAndVaries(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
