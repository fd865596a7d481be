package queue

import "time"

type queueItem[V any] struct {
	value      V
	enqueuedAt time.Time
}

func (item *queueItem[V]) age(now time.Time) time.Duration {
	return now.Sub(item.enqueuedAt)
}
