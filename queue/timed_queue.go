package queue

import (
	"time"

	"github.com/edwingeng/deque"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// TimedQueue is a FIFO queue whose head can only be dequeued after it has
// been in the queue for at least a caller supplied minimum age.
//
// TimedQueue never blocks and is not safe for concurrent use. Wrap it in a
// BlockQueue, or guard every call with your own lock, when several
// goroutines share it.
//
// The zero value is an empty queue on the real clock.
type TimedQueue[V any] struct {
	items  deque.Deque
	clock  clock.PassiveClock
	logger logrus.FieldLogger
}

var _ Queue[int] = &TimedQueue[int]{}

// NewTimedQueue returns an empty TimedQueue.
func NewTimedQueue[V any](opts ...Option) *TimedQueue[V] {
	return newTimedQueue[V](newConfig(opts...))
}

func newTimedQueue[V any](cfg *config) *TimedQueue[V] {
	return &TimedQueue[V]{
		items:  deque.NewDeque(),
		clock:  cfg.clock,
		logger: cfg.logger,
	}
}

// Enqueue appends value stamped with the current time and returns the new
// length.
func (q *TimedQueue[V]) Enqueue(value V) int {
	q.lazyInit()
	q.items.PushBack(&queueItem[V]{value: value, enqueuedAt: q.now()})
	return q.items.Len()
}

// Dequeue removes and returns the head if it is at least minAge old.
// An item whose age equals minAge qualifies.
func (q *TimedQueue[V]) Dequeue(minAge time.Duration) (V, bool) {
	value, _, ok := q.DequeueEntry(minAge)
	return value, ok
}

// DequeueEntry is Dequeue that also reports when the item was enqueued.
func (q *TimedQueue[V]) DequeueEntry(minAge time.Duration) (V, time.Time, bool) {
	head, ok := q.head()
	if !ok || head.age(q.now()) < minAge {
		var empty V
		return empty, time.Time{}, false
	}

	q.items.PopFront()
	return head.value, head.enqueuedAt, true
}

// Peek returns the head and its enqueue time without removing it.
func (q *TimedQueue[V]) Peek() (V, time.Time, bool) {
	head, ok := q.head()
	if !ok {
		var empty V
		return empty, time.Time{}, false
	}
	return head.value, head.enqueuedAt, true
}

// Len returns the number of queued items.
func (q *TimedQueue[V]) Len() int {
	if q.items == nil {
		return 0
	}
	return q.items.Len()
}

// Clear drops every item regardless of age.
func (q *TimedQueue[V]) Clear() {
	q.lazyInit()
	if n := q.items.Len(); n > 0 {
		q.logger.WithField("dropped", n).Debug("clear timed queue")
	}
	q.items = deque.NewDeque()
}

// now drops the monotonic reading so ages follow the wall clock.
func (q *TimedQueue[V]) now() time.Time {
	return q.clock.Now().Round(0)
}

// readyIn reports how long until the head reaches minAge. It is not
// positive when the head can be dequeued now.
func (q *TimedQueue[V]) readyIn(minAge time.Duration) (time.Duration, bool) {
	head, ok := q.head()
	if !ok {
		return 0, false
	}
	return minAge - head.age(q.now()), true
}

func (q *TimedQueue[V]) lazyInit() {
	if q.items == nil {
		q.items = deque.NewDeque()
	}
	if q.clock == nil {
		q.clock = clock.RealClock{}
	}
	if q.logger == nil {
		q.logger = logrus.StandardLogger()
	}
}

func (q *TimedQueue[V]) head() (*queueItem[V], bool) {
	q.lazyInit()
	if q.items.Empty() {
		return nil, false
	}
	return q.items.Front().(*queueItem[V]), true
}
