package lottery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashToFieldIsDeterministic(t *testing.T) {
	a := HashToField("tag", []byte("hello"))
	b := HashToField("tag", []byte("hello"))
	require.True(t, a.Equal(&b))
}

func TestHashToFieldDistinguishesTags(t *testing.T) {
	a := HashToField("tag-a", []byte("hello"))
	b := HashToField("tag-b", []byte("hello"))
	require.False(t, a.Equal(&b))
}

func TestHashToFieldDistinguishesInputs(t *testing.T) {
	a := HashToField("tag", []byte("hello"))
	b := HashToField("tag", []byte("world"))
	require.False(t, a.Equal(&b))
}

func TestHashSeedToFieldDistinguishesRounds(t *testing.T) {
	seed := Seed{Round: 1, Beacon: []byte("beacon")}
	other := Seed{Round: 2, Beacon: []byte("beacon")}
	a := HashSeedToField("jack/ticket", seed)
	b := HashSeedToField("jack/ticket", other)
	require.False(t, a.Equal(&b))
}
