package vc

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/b-wagn/jackpot/internal/entropy"
)

func testSRS(t testing.TB, n int) *SRS {
	rng := entropy.Deterministic([]byte("vc-commit-test-seed"), t.Name())
	srs, err := Setup(rng, n)
	require.NoError(t, err)
	return srs
}

func randomVector(t testing.TB, n int, label string) Vector {
	rng := entropy.Deterministic([]byte("vc-commit-test-vector"), label)
	v, err := randomScalars(rng, n)
	require.NoError(t, err)
	return v
}

func TestCommitIsDeterministic(t *testing.T) {
	srs := testSRS(t, 8)
	v := randomVector(t, 8, "det")

	c1, err := srs.Commit(v)
	require.NoError(t, err)
	c2, err := srs.Commit(v)
	require.NoError(t, err)

	require.Equal(t, c1.Bytes(), c2.Bytes())
}

func TestCommitRejectsWrongLength(t *testing.T) {
	srs := testSRS(t, 8)
	_, err := srs.Commit(make(Vector, 7))
	require.ErrorIs(t, err, ErrDomain)
}

func TestCommitHomomorphicProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	srs := testSRS(t, 8)

	properties.Property("Commit(v)+Commit(w) == Commit(v+w)", prop.ForAll(
		func(seedA, seedB uint64) bool {
			rngA := entropy.Deterministic([]byte{byte(seedA), byte(seedA >> 8)}, "homA")
			rngB := entropy.Deterministic([]byte{byte(seedB), byte(seedB >> 8)}, "homB")
			v, _ := randomScalars(rngA, 8)
			w, _ := randomScalars(rngB, 8)

			sum := make(Vector, 8)
			for i := range sum {
				sum[i].Add(&v[i], &w[i])
			}

			cv, _ := srs.Commit(v)
			cw, _ := srs.Commit(w)
			cSum, _ := srs.Commit(sum)

			return bytes.Equal(cv.Add(cw).Bytes(), cSum.Bytes())
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestShiftValueMatchesCommitOfShiftedVector(t *testing.T) {
	srs := testSRS(t, 8)
	v := randomVector(t, 8, "shift")

	c, err := srs.Commit(v)
	require.NoError(t, err)

	var delta fr.Element
	delta.SetUint64(42)

	shifted, err := srs.ShiftValue(c, 3, delta)
	require.NoError(t, err)

	v2 := make(Vector, len(v))
	copy(v2, v)
	v2[3].Add(&v2[3], &delta)

	want, err := srs.Commit(v2)
	require.NoError(t, err)

	require.Equal(t, want.Bytes(), shifted.Bytes())
}
