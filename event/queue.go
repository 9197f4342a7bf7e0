package event

import (
	"sync/atomic"
)

// Request is a deferred action posted from an asynchronous context (signal goroutine)
// and executed by the session loop at its safe point
type Request uint8

const (
	RequestNone Request = iota
	RequestResize
	RequestResume
	RequestStop
)

// String returns the request name for logging
func (r Request) String() string {
	switch r {
	case RequestResize:
		return "resize"
	case RequestResume:
		return "resume"
	case RequestStop:
		return "stop"
	default:
		return "none"
	}
}

const (
	queueSize = 16 // Must be power of 2
	queueMask = queueSize - 1
)

// Queue is a lock-free MPSC ring buffer of requests
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (session loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest requests overwritten when full
type Queue struct {
	items     [queueSize]Request
	published [queueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64

	// notify is signalled (non-blocking) on every push so a blocked reader can wake
	notify chan struct{}
}

// NewQueue creates an empty request queue
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push adds a request. Safe from any goroutine
func (q *Queue) Push(r Request) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & queueMask

			q.items[idx] = r
			q.published[idx].Store(true) // MUST be after write

			currentHead := q.head.Load()
			if nextTail-currentHead > queueSize {
				q.head.CompareAndSwap(currentHead, nextTail-queueSize)
			}
			break
		}
	}

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Consume returns all pending requests in FIFO order and advances head
// Single consumer only
func (q *Queue) Consume() []Request {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > queueSize {
			available = queueSize
			currentHead = currentTail - queueSize
		}

		result := make([]Request, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & queueMask
			if !q.published[idx].Load() {
				break // Writer incomplete
			}
			result = append(result, q.items[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending request count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > queueSize {
		return queueSize
	}
	return diff
}

// Notify returns a channel that receives after each Push
// The session loop uses it to cut its input wait short
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}

// Coalesce collapses duplicates while preserving first-occurrence order
// A resume supersedes resize since restore re-runs rescale
func Coalesce(reqs []Request) []Request {
	if len(reqs) < 2 {
		return reqs
	}
	var seen [RequestStop + 1]bool
	hasResume := false
	for _, r := range reqs {
		if r == RequestResume {
			hasResume = true
		}
	}
	out := reqs[:0:0]
	for _, r := range reqs {
		if r == RequestNone || seen[r] {
			continue
		}
		if r == RequestResize && hasResume {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
