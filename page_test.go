package mmapio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPageGranularity(t *testing.T) {
	g := PageGranularity()
	require.Positive(t, g)

	// Repeated calls return the cached value.
	assert.Equal(t, g, PageGranularity())
}

func TestPageGranularity_Concurrent(t *testing.T) {
	want := PageGranularity()

	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		eg.Go(func() error {
			if got := PageGranularity(); got != want {
				t.Errorf("PageGranularity() = %d, want %d", got, want)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

func TestAlignDown(t *testing.T) {
	g := PageGranularity()

	offsets := []int64{0, 1, 100, g - 1, g, g + 1, 2*g - 3, 2 * g, 5*g + 7}
	for _, off := range offsets {
		aligned := AlignDown(off)
		assert.LessOrEqual(t, aligned, off)
		assert.Less(t, off-aligned, g)
		assert.Zero(t, aligned%g)
	}
}
