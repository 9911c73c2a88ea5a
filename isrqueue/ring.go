// Package isrqueue implements the bounded single-producer/single-consumer
// ring buffer the scheduler uses to accept work from interrupt context.
//
// Concurrency model: exactly one producer goroutine (conceptually, an
// ISR) and exactly one consumer goroutine (the scheduler's foreground).
// Unlike a general MPSC/MPMC ring, a true SPSC ring needs no
// compare-and-swap on either side: each side owns one index outright
// and only ever reads the other side's index, so a plain atomic
// store/load pair is both necessary and sufficient.
//
// Memory ordering follows the classic SPSC recipe also used by the
// teacher's lock-free MicrotaskRing (see eventloop's ingress.go): the
// producer writes the slot's payload *before* publishing the updated
// producer index (a release), and the consumer reads the producer
// index (an acquire) before touching the slot. Go's atomic package
// gives release/acquire semantics on its own, so no separate memory
// fence is required here; on a true single-core microcontroller target
// a compiler barrier would suffice instead.
//
// Ring must never allocate or block on Push/Pop: both are meant to be
// callable from interrupt context, where allocation and blocking are
// unsafe.
package isrqueue

import "sync/atomic"

// ErrFull is returned by Push when the ring has no free slots.
type ErrFull struct{}

func (ErrFull) Error() string { return "isrqueue: ring is full" }

// Ring is a fixed-capacity SPSC ring buffer of T. The zero value is not
// usable; construct with [New].
type Ring[T any] struct {
	mask uint64
	buf  []T

	// producer and consumer are padded apart so the two hot counters,
	// each written by a different goroutine, don't share a cache line.
	producer atomic.Uint64
	_        [7]uint64
	consumer atomic.Uint64
	_        [7]uint64
}

// New creates a Ring with the given capacity, which must be a power of
// two. Only capacity-1 slots are ever usable: one slot is sacrificed so
// that the "full" and "empty" states produce distinct index patterns.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("isrqueue: capacity must be a power of two")
	}
	return &Ring[T]{
		mask: uint64(capacity - 1),
		buf:  make([]T, capacity),
	}
}

// Cap returns the usable capacity (one less than the backing array's
// length).
func (r *Ring[T]) Cap() int {
	return int(r.mask)
}

// Push appends item to the ring. Safe to call concurrently with a
// single Pop caller. Returns ErrFull if the ring has no free slots; the
// item is not enqueued in that case.
func (r *Ring[T]) Push(item T) error {
	producer := r.producer.Load()
	consumer := r.consumer.Load()
	if (producer+1)&r.mask == consumer&r.mask {
		return ErrFull{}
	}
	r.buf[producer&r.mask] = item
	r.producer.Store(producer + 1)
	return nil
}

// Pop removes and returns the oldest item. Safe to call concurrently
// with a single Push caller. ok is false if the ring was empty.
func (r *Ring[T]) Pop() (item T, ok bool) {
	consumer := r.consumer.Load()
	producer := r.producer.Load()
	if producer == consumer {
		return item, false
	}
	item = r.buf[consumer&r.mask]
	var zero T
	r.buf[consumer&r.mask] = zero // drop the reference so Pop doesn't pin garbage
	r.consumer.Store(consumer + 1)
	return item, true
}

// Len returns a snapshot of the number of items currently enqueued.
// Under concurrent Push/Pop this is inherently stale the instant it's
// read; it exists for diagnostics, not control flow.
func (r *Ring[T]) Len() int {
	return int(r.producer.Load() - r.consumer.Load())
}

// Reset drains the ring without returning its contents. The caller
// must ensure there is no concurrent Push or Pop in progress.
func (r *Ring[T]) Reset() {
	r.producer.Store(0)
	r.consumer.Store(0)
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
}
