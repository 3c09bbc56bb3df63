package pointgo

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	cacheSize        int
	parallelism      int
}

// Option configures engine construction.
type Option func(*options)

// WithLogger configures the structured logger. Pass nil to restore the
// default (no-op) logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCacheSize configures how many neighborhoods are kept in the
// (k, metric) cache. 0 disables caching.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithParallelism bounds the number of concurrent workers for per-point
// computations. 0 means GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}
