// Package fingerprint tracks djb2 digests of named contents and reports
// when they change.
package fingerprint

import (
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/sirupsen/logrus"

	"github.com/LiuYuuChen/tinyutil/hash"
)

// Detector remembers the last digest seen per key. It is safe for
// concurrent use.
type Detector struct {
	sums   cmap.ConcurrentMap[string, uint32]
	logger logrus.FieldLogger
}

type config struct {
	logger logrus.FieldLogger
}

// Option configures a Detector.
type Option func(*config)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// New returns a Detector with nothing observed yet.
func New(opts ...Option) *Detector {
	cfg := &config{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Detector{
		sums:   cmap.New[uint32](),
		logger: cfg.logger,
	}
}

// Observe records the digest of content under key. changed is true the first
// time key is seen and whenever the digest differs from the stored one.
func (d *Detector) Observe(key, content string) (sum uint32, changed bool) {
	sum = hash.String(content)
	d.sums.Upsert(key, sum, func(exist bool, old, next uint32) uint32 {
		changed = !exist || old != next
		return next
	})
	if changed {
		d.logger.WithFields(logrus.Fields{"key": key, "sum": sum}).Debug("content changed")
	}
	return sum, changed
}

// Sum returns the stored digest for key.
func (d *Detector) Sum(key string) (uint32, bool) {
	return d.sums.Get(key)
}

// Forget drops key so its next Observe reports a change.
func (d *Detector) Forget(key string) {
	d.sums.Remove(key)
}

// Len returns the number of tracked keys.
func (d *Detector) Len() int {
	return d.sums.Count()
}

// Keys returns the tracked keys in sorted order.
func (d *Detector) Keys() []string {
	keys := d.sums.Keys()
	sort.Strings(keys)
	return keys
}

func (d *Detector) Reset() {
	d.sums.Clear()
}
