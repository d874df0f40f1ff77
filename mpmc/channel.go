// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"context"
	"time"

	"code.hybscloud.com/atomix"
)

// flavor is the queue storage behind a channel. Both operations are
// non-blocking and return iox.ErrWouldBlock at the capacity boundary.
type flavor[T any] interface {
	tryPush(v T) error
	tryPop() (T, error)
	len() int
	cap() int
}

// channel is the state shared by every handle of one channel.
// Exactly one of q and handoff is set.
type channel[T any] struct {
	q       flavor[T]
	handoff chan T

	senders       atomix.Int64
	receivers     atomix.Int64
	sendersGone   chan struct{}
	receiversGone chan struct{}

	// readable is notified after a push, writable after a pop.
	readable waker
	writable waker
}

func newChannel[T any](q flavor[T], handoff chan T) *channel[T] {
	c := &channel[T]{
		q:             q,
		handoff:       handoff,
		sendersGone:   make(chan struct{}),
		receiversGone: make(chan struct{}),
	}
	c.senders.Add(1)
	c.receivers.Add(1)
	return c
}

// Unbounded creates a channel with no capacity limit.
func Unbounded[T any]() (*Sender[T], *Receiver[T]) {
	return newPair(newChannel[T](&list[T]{}, nil))
}

// Bounded creates a channel holding at most capacity queued messages.
// Capacity 0 yields a rendezvous channel. Bounded panics if capacity is
// negative.
func Bounded[T any](capacity int) (*Sender[T], *Receiver[T]) {
	if capacity < 0 {
		panic("mpmc: negative capacity")
	}
	if capacity == 0 {
		return newPair(newChannel[T](nil, make(chan T)))
	}
	return newPair(newChannel[T](newArray[T](capacity), nil))
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// acquire increments count unless it already dropped to zero, so a
// disconnected side is never revived.
func acquire(count *atomix.Int64) bool {
	for {
		n := count.Load()
		if n <= 0 {
			return false
		}
		if count.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (c *channel[T]) releaseSender() {
	if c.senders.Add(-1) == 0 {
		close(c.sendersGone)
	}
}

func (c *channel[T]) releaseReceiver() {
	if c.receivers.Add(-1) == 0 {
		close(c.receiversGone)
	}
}

func (c *channel[T]) trySend(v T) error {
	if closed(c.receiversGone) {
		return ErrDisconnected
	}
	if c.handoff != nil {
		select {
		case c.handoff <- v:
			return nil
		default:
			return ErrFull
		}
	}
	if c.q.tryPush(v) != nil {
		return ErrFull
	}
	c.readable.notify()
	return nil
}

// send blocks until v is enqueued, every receiver is released, timeout
// fires, or ctx is done. A nil timeout never fires.
func (c *channel[T]) send(ctx context.Context, v T, timeout <-chan time.Time) error {
	if c.handoff != nil {
		return c.sendHandoff(ctx, v, timeout)
	}
	for {
		if closed(c.receiversGone) {
			return ErrDisconnected
		}
		if c.q.tryPush(v) == nil {
			c.readable.notify()
			return nil
		}
		wake := c.writable.arm()
		if c.q.tryPush(v) == nil {
			c.readable.notify()
			return nil
		}
		select {
		case <-wake:
		case <-c.receiversGone:
		case <-timeout:
			return ErrTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *channel[T]) sendHandoff(ctx context.Context, v T, timeout <-chan time.Time) error {
	if closed(c.receiversGone) {
		return ErrDisconnected
	}
	select {
	case c.handoff <- v:
		return nil
	case <-c.receiversGone:
		return ErrDisconnected
	case <-timeout:
		return ErrTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *channel[T]) tryRecv() (T, error) {
	gone := closed(c.sendersGone)
	if c.handoff != nil {
		select {
		case v := <-c.handoff:
			return v, nil
		default:
		}
	} else if v, err := c.q.tryPop(); err == nil {
		c.writable.notify()
		return v, nil
	}
	var zero T
	if gone {
		return zero, ErrDisconnected
	}
	return zero, ErrEmpty
}

// recv blocks until a message is dequeued, the queue is drained with every
// sender released, timeout fires, or ctx is done. The disconnect state is
// sampled before the final pop so that messages sent before the last sender
// was released are always delivered.
func (c *channel[T]) recv(ctx context.Context, timeout <-chan time.Time) (T, error) {
	if c.handoff != nil {
		return c.recvHandoff(ctx, timeout)
	}
	var zero T
	for {
		gone := closed(c.sendersGone)
		if v, err := c.q.tryPop(); err == nil {
			c.writable.notify()
			return v, nil
		}
		if gone {
			return zero, ErrDisconnected
		}
		wake := c.readable.arm()
		if v, err := c.q.tryPop(); err == nil {
			c.writable.notify()
			return v, nil
		}
		select {
		case <-wake:
		case <-c.sendersGone:
		case <-timeout:
			return zero, ErrTimeout
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func (c *channel[T]) recvHandoff(ctx context.Context, timeout <-chan time.Time) (T, error) {
	var zero T
	select {
	case v := <-c.handoff:
		return v, nil
	case <-c.sendersGone:
		select {
		case v := <-c.handoff:
			return v, nil
		default:
			return zero, ErrDisconnected
		}
	case <-timeout:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *channel[T]) len() int {
	if c.handoff != nil {
		return 0
	}
	return c.q.len()
}

func (c *channel[T]) cap() int {
	if c.handoff != nil {
		return 0
	}
	return c.q.cap()
}
