package pointgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordStructureBuild is called after each voxel grid or octree build.
	RecordStructureBuild(structure string, duration time.Duration, err error)

	// RecordNeighborhood is called after each neighborhood query.
	// cached reports whether the result was served from the cache.
	RecordNeighborhood(k int, cached bool, duration time.Duration, err error)

	// RecordFeature is called after each feature extraction.
	RecordFeature(name string, duration time.Duration, err error)

	// RecordFilter is called after each filter run.
	RecordFilter(name string, kept int, duration time.Duration, err error)
}

// Compile-time interface checks
var (
	_ MetricsCollector = NoopMetricsCollector{}
	_ MetricsCollector = (*BasicMetricsCollector)(nil)
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordStructureBuild(string, time.Duration, error)  {}
func (NoopMetricsCollector) RecordNeighborhood(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordFeature(string, time.Duration, error)         {}
func (NoopMetricsCollector) RecordFilter(string, int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	StructureBuilds    atomic.Int64
	StructureErrors    atomic.Int64
	NeighborhoodCount  atomic.Int64
	NeighborhoodHits   atomic.Int64
	NeighborhoodErrors atomic.Int64
	FeatureCount       atomic.Int64
	FeatureErrors      atomic.Int64
	FilterCount        atomic.Int64
	FilterErrors       atomic.Int64
}

func (m *BasicMetricsCollector) RecordStructureBuild(_ string, _ time.Duration, err error) {
	m.StructureBuilds.Add(1)
	if err != nil {
		m.StructureErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordNeighborhood(_ int, cached bool, _ time.Duration, err error) {
	m.NeighborhoodCount.Add(1)
	if cached {
		m.NeighborhoodHits.Add(1)
	}
	if err != nil {
		m.NeighborhoodErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordFeature(_ string, _ time.Duration, err error) {
	m.FeatureCount.Add(1)
	if err != nil {
		m.FeatureErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordFilter(_ string, _ int, _ time.Duration, err error) {
	m.FilterCount.Add(1)
	if err != nil {
		m.FilterErrors.Add(1)
	}
}
