package queue

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"k8s.io/utils/clock"
)

// ErrShutdown is returned by DequeueWait once the queue is shut down and no
// item is ready.
var ErrShutdown = errors.New("queue is shut down")

// BlockQueue guards a TimedQueue with a lock and adds a waiting dequeue.
// It must be created with NewBlockQueue.
type BlockQueue[V any] struct {
	lock         sync.Locker
	queue        *TimedQueue[V]
	clock        clock.Clock
	pollInterval time.Duration
	logger       logrus.FieldLogger
	// dropLogs throttles the warning for values enqueued after Shutdown.
	dropLogs *rate.Limiter

	// notify is closed and replaced on every Enqueue and on Shutdown.
	notify   chan struct{}
	stopping bool
}

var _ Queue[int] = &BlockQueue[int]{}

// NewBlockQueue returns an empty BlockQueue that is safe for concurrent use.
func NewBlockQueue[V any](opts ...Option) *BlockQueue[V] {
	cfg := newConfig(opts...)
	return &BlockQueue[V]{
		lock:         cfg.lock,
		queue:        newTimedQueue[V](cfg),
		clock:        cfg.clock,
		pollInterval: cfg.pollInterval,
		logger:       cfg.logger,
		dropLogs:     rate.NewLimiter(rate.Every(time.Second), 1),
		notify:       make(chan struct{}),
	}
}

// Enqueue drops the value once the queue is shut down.
func (que *BlockQueue[V]) Enqueue(value V) int {
	que.lock.Lock()
	defer que.lock.Unlock()
	if que.stopping {
		if que.dropLogs.Allow() {
			que.logger.Warn("enqueue to a shut down queue, value dropped")
		}
		return que.queue.Len()
	}
	n := que.queue.Enqueue(value)
	que.wakeLocked()
	return n
}

func (que *BlockQueue[V]) Dequeue(minAge time.Duration) (V, bool) {
	que.lock.Lock()
	defer que.lock.Unlock()
	return que.queue.Dequeue(minAge)
}

func (que *BlockQueue[V]) Peek() (V, time.Time, bool) {
	que.lock.Lock()
	defer que.lock.Unlock()
	return que.queue.Peek()
}

func (que *BlockQueue[V]) Len() int {
	que.lock.Lock()
	defer que.lock.Unlock()
	return que.queue.Len()
}

func (que *BlockQueue[V]) Clear() {
	que.lock.Lock()
	defer que.lock.Unlock()
	que.queue.Clear()
}

// DequeueWait blocks until the head is at least minAge old, ctx is done or
// the queue is shut down. Items already ready are still handed out after
// Shutdown.
//
// A waiter wakes on every Enqueue, when the head should have reached minAge,
// and at least once per poll interval so that wall clock jumps are noticed.
func (que *BlockQueue[V]) DequeueWait(ctx context.Context, minAge time.Duration) (V, error) {
	for {
		que.lock.Lock()
		value, ok := que.queue.Dequeue(minAge)
		wait := que.pollInterval
		if remaining, found := que.queue.readyIn(minAge); found && remaining < wait {
			wait = remaining
		}
		notify := que.notify
		stopping := que.stopping
		que.lock.Unlock()

		if ok {
			return value, nil
		}
		if stopping {
			var empty V
			return empty, ErrShutdown
		}
		if wait < 0 {
			wait = 0
		}

		timer := que.clock.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			var empty V
			return empty, errors.Wrap(ctx.Err(), "wait for a ready item")
		case <-notify:
		case <-timer.C():
		}
		timer.Stop()
	}
}

func (que *BlockQueue[V]) Shutdown() {
	que.lock.Lock()
	defer que.lock.Unlock()
	if que.stopping {
		return
	}
	que.logger.WithField("pending", que.queue.Len()).Debug("shut down block queue")
	que.stopping = true
	que.wakeLocked()
}

func (que *BlockQueue[V]) IsShutdown() bool {
	que.lock.Lock()
	defer que.lock.Unlock()
	return que.stopping
}

func (que *BlockQueue[V]) wakeLocked() {
	close(que.notify)
	que.notify = make(chan struct{})
}
