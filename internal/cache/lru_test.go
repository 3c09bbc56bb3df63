package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/neighborhood"
	"github.com/hupe1980/pointgo/points"
	"github.com/hupe1980/pointgo/testutil"
)

func buildNeighborhood(t *testing.T, k int) *neighborhood.Neighborhood {
	t.Helper()
	ps, err := points.New(testutil.NewRNG(int64(k)).UniformCloud(20))
	require.NoError(t, err)
	nb, err := neighborhood.Build(context.Background(), ps, k)
	require.NoError(t, err)
	return nb
}

func TestGetSet(t *testing.T) {
	c := NewLRU(2)

	key := Key{K: 3, Metric: distance.MetricEuclidean}
	_, ok := c.Get(key)
	assert.False(t, ok)

	nb := buildNeighborhood(t, 3)
	c.Set(key, nb)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Same(t, nb, got)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestEviction(t *testing.T) {
	c := NewLRU(2)

	nb2 := buildNeighborhood(t, 2)
	nb3 := buildNeighborhood(t, 3)
	nb4 := buildNeighborhood(t, 4)

	k2 := Key{K: 2, Metric: distance.MetricEuclidean}
	k3 := Key{K: 3, Metric: distance.MetricEuclidean}
	k4 := Key{K: 4, Metric: distance.MetricEuclidean}

	c.Set(k2, nb2)
	c.Set(k3, nb3)

	// Touch k2 so k3 becomes the eviction candidate.
	_, ok := c.Get(k2)
	require.True(t, ok)

	c.Set(k4, nb4)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(k3)
	assert.False(t, ok)
	_, ok = c.Get(k2)
	assert.True(t, ok)
	_, ok = c.Get(k4)
	assert.True(t, ok)
}

func TestMetricDistinguishesKeys(t *testing.T) {
	c := NewLRU(4)
	nb := buildNeighborhood(t, 3)

	c.Set(Key{K: 3, Metric: distance.MetricEuclidean}, nb)

	_, ok := c.Get(Key{K: 3, Metric: distance.MetricManhattan})
	assert.False(t, ok)
}

func TestZeroCapacityDisables(t *testing.T) {
	c := NewLRU(0)
	nb := buildNeighborhood(t, 2)

	key := Key{K: 2, Metric: distance.MetricEuclidean}
	c.Set(key, nb)

	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
