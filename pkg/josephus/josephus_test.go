package josephus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSurvivor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		k, n uint64
		want uint64
	}{
		{"single person", 3, 1, 0},
		{"every second of five", 2, 5, 2},
		{"every second of seven", 2, 7, 6},
		{"every third of seven", 3, 7, 3},
		{"classic forty-one by three", 3, 41, 30},
		{"k equal to one removes in order", 1, 10, 9},
		{"k larger than n", 10, 4, 3},
		{"k zero", 0, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Recursive(tt.k, tt.n)
			require.NoError(t, err)
			require.Equal(t, tt.want, got, "recursive")

			got, err = Iterative(tt.k, tt.n)
			require.NoError(t, err)
			require.Equal(t, tt.want, got, "iterative")
		})
	}
}

func TestEmptyCircle(t *testing.T) {
	t.Parallel()

	_, err := Recursive(2, 0)
	require.ErrorIs(t, err, ErrEmptyCircle)
	_, err = Iterative(2, 0)
	require.ErrorIs(t, err, ErrEmptyCircle)
}

func TestVariantsAgree(t *testing.T) {
	t.Parallel()

	for n := uint64(1); n <= 200; n++ {
		for _, k := range []uint64{1, 2, 3, 7, 13, 1000, math.MaxUint64} {
			r, err := Recursive(k, n)
			require.NoError(t, err)
			i, err := Iterative(k, n)
			require.NoError(t, err)
			require.Equal(t, r, i, "k=%d n=%d", k, n)
			require.Less(t, r, n)
		}
	}
}
