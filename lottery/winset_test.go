package lottery

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

func TestWinningSetPowerOfTwoMatchesModulo(t *testing.T) {
	ws := NewWinningSet(8)
	for i := uint64(0); i < 64; i++ {
		var x fr.Element
		x.SetUint64(i)
		require.Equal(t, i%8 == 0, ws.Contains(x), "i=%d", i)
	}
}

func TestWinningSetNonPowerOfTwoMatchesModulo(t *testing.T) {
	ws := NewWinningSet(7)
	for i := uint64(0); i < 64; i++ {
		var x fr.Element
		x.SetUint64(i)
		require.Equal(t, i%7 == 0, ws.Contains(x), "i=%d", i)
	}
}

func TestWinningSetKEqualsOneAlwaysWins(t *testing.T) {
	ws := NewWinningSet(1)
	var x fr.Element
	x.SetUint64(12345)
	require.True(t, ws.Contains(x))
}
