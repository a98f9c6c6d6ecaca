package cache

import (
	"context"
	"sync"
	"time"
)

// queue is an unbounded FIFO shared between the render thread and the
// worker. notify holds at most one pending wake-up.
type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	notify chan struct{}
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{notify: make(chan struct{}, 1)}
}

func (q *queue[T]) push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *queue[T]) tryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// drain removes and returns everything queued.
func (q *queue[T]) drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// wait blocks until something may have been pushed, delay elapses, or ctx is
// done. A zero delay waits without a timeout. It returns false once ctx is
// done.
func (q *queue[T]) wait(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		select {
		case <-q.notify:
			return true
		case <-ctx.Done():
			return false
		}
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-q.notify:
	case <-t.C:
	case <-ctx.Done():
		return false
	}
	return true
}
