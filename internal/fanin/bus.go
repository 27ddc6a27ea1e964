// Package fanin merges change notifications from many tailers into a single
// channel consumed by the render loop. Signals carry no payload; the receiver
// re-reads whatever state it needs.
package fanin

import (
	"context"
	"fmt"
	"strings"
)

// DefaultCapacity is the queue size used when New is given a non-positive one.
const DefaultCapacity = 100

// Policy selects how a producer behaves when the queue is full.
type Policy string

const (
	// PolicyBlock waits for room, applying backpressure to the producer.
	PolicyBlock Policy = "block"
	// PolicyDrop discards the signal; a queued one already guarantees a redraw.
	PolicyDrop Policy = "drop"
)

// ParsePolicy maps a config value to a Policy. Empty means PolicyBlock.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyBlock, nil
	case PolicyBlock, PolicyDrop:
		return p, nil
	default:
		return "", fmt.Errorf("unknown notify policy %q (want block or drop)", s)
	}
}

// Bus is a bounded multi-producer, single-consumer signal queue.
type Bus struct {
	ch chan struct{}
}

// New returns a bus holding at most capacity pending signals.
func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{ch: make(chan struct{}, capacity)}
}

// Notify enqueues a signal, waiting while the queue is full. It returns
// ctx.Err() if ctx ends first.
func (b *Bus) Notify(ctx context.Context) error {
	select {
	case b.ch <- struct{}{}:
		return nil
	default:
	}
	select {
	case b.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryNotify enqueues a signal if there is room and reports whether it did.
func (b *Bus) TryNotify() bool {
	select {
	case b.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// Signal returns a notify callback suitable for logtail.Tailer.Start.
func (b *Bus) Signal(ctx context.Context, policy Policy) func() {
	if policy == PolicyDrop {
		return func() { b.TryNotify() }
	}
	return func() { _ = b.Notify(ctx) }
}

// C is the receive side. There must be only one consumer.
func (b *Bus) C() <-chan struct{} {
	return b.ch
}

// Drain discards every queued signal and returns how many there were.
func (b *Bus) Drain() int {
	n := 0
	for {
		select {
		case <-b.ch:
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued signals.
func (b *Bus) Len() int {
	return len(b.ch)
}

// Cap returns the queue capacity.
func (b *Bus) Cap() int {
	return cap(b.ch)
}
