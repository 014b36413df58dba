package montecarlo

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionRejectsWorkers(t *testing.T) {
	for _, workers := range []int{0, -1, -32} {
		assignments, err := Partition(DefaultSamples, workers, 1, PerWorker)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidWorkers))
		require.Nil(t, assignments)
	}
}

func TestPartitionRejectsNegativeSamples(t *testing.T) {
	_, err := Partition(-1, 4, 1, PerWorker)
	require.True(t, errors.Is(err, ErrInvalidSamples))
}

func TestPartitionRejectsOverflowingTotal(t *testing.T) {
	_, err := Partition(1<<62, 2, 1, PerWorker)
	require.True(t, errors.Is(err, ErrInvalidSamples))

	_, err = Partition(math.MaxInt64/3+1, 3, 1, PerWorker)
	require.True(t, errors.Is(err, ErrInvalidSamples))

	assignments, err := Partition(math.MaxInt64/3, 3, 1, PerWorker)
	require.NoError(t, err)
	assert.Positive(t, TotalSamples(assignments))

	assignments, err = Partition(1<<62, 2, 1, Split)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<62), TotalSamples(assignments))
}

func TestPartitionPerWorker(t *testing.T) {
	assignments, err := Partition(1000, 4, 7, PerWorker)
	require.NoError(t, err)
	require.Len(t, assignments, 4)
	for i, a := range assignments {
		assert.Equal(t, i, a.Index)
		assert.Equal(t, int64(1000), a.Samples)
		assert.Equal(t, DeriveSeed(7, i), a.Seed)
	}
	assert.Equal(t, int64(4000), TotalSamples(assignments))
}

func TestPartitionSplit(t *testing.T) {
	assignments, err := Partition(1003, 4, 7, Split)
	require.NoError(t, err)
	require.Len(t, assignments, 4)
	assert.Equal(t, int64(250), assignments[0].Samples)
	assert.Equal(t, int64(250), assignments[2].Samples)
	assert.Equal(t, int64(253), assignments[3].Samples)
	assert.Equal(t, int64(1003), TotalSamples(assignments))

	assignments, err = Partition(3, 8, 7, Split)
	require.NoError(t, err)
	assert.Equal(t, int64(3), TotalSamples(assignments))
	assert.Equal(t, int64(0), assignments[0].Samples)
}

func TestPartitionUnknownPolicy(t *testing.T) {
	_, err := Partition(10, 1, 0, Policy(9))
	require.Error(t, err)
	assert.Equal(t, "policy(9)", Policy(9).String())
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, Seed{0x5678, 0x3456, 0x1234}, DeriveSeed(0x12345678, 0))
	assert.Equal(t, Seed{0x5679, 0x3456, 0x1234}, DeriveSeed(0x12345678, 1))
	// wraps around 32 bits
	assert.Equal(t, Seed{0x0000, 0x0000, 0x0000}, DeriveSeed(0xffffffff, 1))
}

func TestDeriveSeedDistinct(t *testing.T) {
	for _, base := range []uint32{0, 1, 0xfffe, 0x7fffffff, 0xffff0000, 0xffffffff} {
		assignments, err := Partition(0, 1<<16, base, PerWorker)
		require.NoError(t, err)

		seen := make(map[Seed]int, len(assignments))
		for _, a := range assignments {
			prev, dup := seen[a.Seed]
			require.False(t, dup, "base %#x: workers %d and %d share seed %v", base, prev, a.Index, a.Seed)
			seen[a.Seed] = a.Index
		}
	}
}
