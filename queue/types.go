package queue

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Queue is a FIFO whose head only leaves once it is old enough.
// A false second result means absent: either the queue is empty or the
// head has not dwelled for minAge yet.
type Queue[V any] interface {
	Enqueue(value V) int
	Dequeue(minAge time.Duration) (V, bool)
	Peek() (V, time.Time, bool)
	Len() int
	Clear()
}

const defaultPollInterval = 10 * time.Millisecond

type config struct {
	clock        clock.Clock
	logger       logrus.FieldLogger
	lock         sync.Locker
	pollInterval time.Duration
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		clock:        clock.RealClock{},
		logger:       logrus.StandardLogger(),
		lock:         &sync.Mutex{},
		pollInterval: defaultPollInterval,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a TimedQueue or BlockQueue.
type Option func(*config)

// WithClock sets the time source used to stamp and age items, and the
// timers BlockQueue.DequeueWait sleeps on.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithLocker only matters for BlockQueue, TimedQueue never locks.
func WithLocker(lock sync.Locker) Option {
	return func(cfg *config) {
		if lock != nil {
			cfg.lock = lock
		}
	}
}

// WithPollInterval caps how long BlockQueue.DequeueWait sleeps between
// checks of the head.
func WithPollInterval(interval time.Duration) Option {
	return func(cfg *config) {
		if interval > 0 {
			cfg.pollInterval = interval
		}
	}
}
