package falconapi

import (
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Engine runs Falcon operations with a given logger, entropy source and
// metrics sink. The zero value is not usable; create engines with New.
type Engine struct {
	log     *zap.Logger
	entropy io.Reader
	metrics *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Successful operations are logged at debug
// level and failures at warn level. Key material is never logged.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithEntropy replaces the operating-system entropy source. It is meant
// for tests and for reproducible key generation; r must provide at
// least 48 bytes per operation. Reads from r are serialized, so r need
// not be safe for concurrent use.
func WithEntropy(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.entropy = &lockedReader{r: r}
		}
	}
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

// Read fills p completely, so that a seed is never split between two
// concurrent operations.
func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return io.ReadFull(l.r, p)
}

// WithMetrics enables operation counters and duration histograms,
// registered with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.metrics = NewMetrics(reg)
	}
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:     zap.NewNop(),
		entropy: systemEntropy{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// With returns a copy of e with opts applied on top of its current
// configuration. e is not modified.
func (e *Engine) With(opts ...Option) *Engine {
	c := *e
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// finish logs and records the outcome of an operation. rejected marks
// a verification that completed with a negative answer.
func (e *Engine) finish(op Op, p SecurityParameter, start time.Time, err error, rejected bool, fields ...zap.Field) {
	fields = append(fields,
		zap.String("op", string(op)),
		zap.Uint("logn", uint(p)),
		zap.Duration("elapsed", time.Since(start)),
	)
	switch {
	case err != nil:
		e.metrics.observe(op, start, resultError)
		e.log.Warn("falcon operation failed",
			append(fields, zap.Int("code", StatusCode(err)), zap.Error(err))...)
	case rejected:
		e.metrics.observe(op, start, resultRejected)
		e.log.Debug("falcon signature rejected", fields...)
	default:
		e.metrics.observe(op, start, resultOK)
		e.log.Debug("falcon operation completed", fields...)
	}
}
