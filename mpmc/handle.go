// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"context"
	"runtime"
	"time"

	"code.hybscloud.com/atomix"
)

// handle is one counted reference to a channel. It is released at most
// once, by Close or by the runtime cleanup of its owner. Every operation
// keeps its owner alive until it returns, so a goroutine parked in Send or
// Recv still holds its reference.
type handle[T any] struct {
	c        *channel[T]
	released atomix.Uint32
	receiver bool
}

func (h *handle[T]) release() {
	if h.released.Load() != 0 || h.released.Add(1) != 1 {
		return
	}
	if h.receiver {
		h.c.releaseReceiver()
	} else {
		h.c.releaseSender()
	}
}

func (h *handle[T]) isReleased() bool {
	return h.released.Load() != 0
}

// deadHandle returns an already released handle on c. It holds no count.
func deadHandle[T any](c *channel[T], receiver bool) *handle[T] {
	h := &handle[T]{c: c, receiver: receiver}
	h.released.Add(1)
	return h
}

func releaseHandle[T any](h *handle[T]) { h.release() }

// Sender is the sending half of a channel. A Sender is safe for concurrent
// use; Clone it to hand out independently closable references.
type Sender[T any] struct {
	h       *handle[T]
	cleanup runtime.Cleanup
}

// Receiver is the receiving half of a channel. A Receiver is safe for
// concurrent use; Clone it to hand out independently closable references.
type Receiver[T any] struct {
	h       *handle[T]
	cleanup runtime.Cleanup
}

func newPair[T any](c *channel[T]) (*Sender[T], *Receiver[T]) {
	return newSender(&handle[T]{c: c}), newReceiver(&handle[T]{c: c, receiver: true})
}

func newSender[T any](h *handle[T]) *Sender[T] {
	s := &Sender[T]{h: h}
	s.cleanup = runtime.AddCleanup(s, releaseHandle[T], h)
	return s
}

func newReceiver[T any](h *handle[T]) *Receiver[T] {
	r := &Receiver[T]{h: h}
	r.cleanup = runtime.AddCleanup(r, releaseHandle[T], h)
	return r
}

// Send enqueues v, blocking while a bounded channel is full.
// It returns ErrDisconnected once every Receiver has been released.
func (s *Sender[T]) Send(v T) error {
	defer runtime.KeepAlive(s)
	if s.h.isReleased() {
		return ErrClosed
	}
	return s.h.c.send(context.Background(), v, nil)
}

// TrySend enqueues v without blocking. It returns ErrFull when a bounded
// channel has no free capacity, or, for a rendezvous channel, when no
// receiver is waiting.
func (s *Sender[T]) TrySend(v T) error {
	defer runtime.KeepAlive(s)
	if s.h.isReleased() {
		return ErrClosed
	}
	return s.h.c.trySend(v)
}

// SendTimeout is Send bounded by d. It returns ErrTimeout if d elapses first.
func (s *Sender[T]) SendTimeout(v T, d time.Duration) error {
	defer runtime.KeepAlive(s)
	if s.h.isReleased() {
		return ErrClosed
	}
	t := time.NewTimer(d)
	defer t.Stop()
	return s.h.c.send(context.Background(), v, t.C)
}

// SendContext is Send bounded by ctx. It returns ctx.Err() if ctx is done
// first.
func (s *Sender[T]) SendContext(ctx context.Context, v T) error {
	defer runtime.KeepAlive(s)
	if s.h.isReleased() {
		return ErrClosed
	}
	return s.h.c.send(ctx, v, nil)
}

// Clone returns a new Sender on the same channel.
// Cloning a closed Sender, or one whose last sibling is being closed
// concurrently, returns another closed Sender.
func (s *Sender[T]) Clone() *Sender[T] {
	if s.h.isReleased() || !acquire(&s.h.c.senders) {
		return newSender(deadHandle(s.h.c, false))
	}
	return newSender(&handle[T]{c: s.h.c})
}

// Close releases this Sender. When the last Sender is released, receivers
// drain the queue and then observe ErrDisconnected. Close is idempotent.
func (s *Sender[T]) Close() error {
	s.cleanup.Stop()
	s.h.release()
	return nil
}

// IsDisconnected reports whether every Receiver has been released.
func (s *Sender[T]) IsDisconnected() bool {
	return closed(s.h.c.receiversGone)
}

// Len returns the number of queued messages.
func (s *Sender[T]) Len() int { return s.h.c.len() }

// Cap returns the channel capacity, or -1 if it is unbounded.
func (s *Sender[T]) Cap() int { return s.h.c.cap() }

// Recv dequeues the next message, blocking while the channel is empty.
// It returns ErrDisconnected once the channel is empty and every Sender
// has been released.
func (r *Receiver[T]) Recv() (T, error) {
	defer runtime.KeepAlive(r)
	if r.h.isReleased() {
		var zero T
		return zero, ErrClosed
	}
	return r.h.c.recv(context.Background(), nil)
}

// TryRecv dequeues the next message without blocking. It returns ErrEmpty
// when nothing is queued and at least one Sender remains.
func (r *Receiver[T]) TryRecv() (T, error) {
	defer runtime.KeepAlive(r)
	if r.h.isReleased() {
		var zero T
		return zero, ErrClosed
	}
	return r.h.c.tryRecv()
}

// RecvTimeout is Recv bounded by d. It returns ErrTimeout if d elapses first.
func (r *Receiver[T]) RecvTimeout(d time.Duration) (T, error) {
	defer runtime.KeepAlive(r)
	if r.h.isReleased() {
		var zero T
		return zero, ErrClosed
	}
	t := time.NewTimer(d)
	defer t.Stop()
	return r.h.c.recv(context.Background(), t.C)
}

// RecvContext is Recv bounded by ctx. It returns ctx.Err() if ctx is done
// first.
func (r *Receiver[T]) RecvContext(ctx context.Context) (T, error) {
	defer runtime.KeepAlive(r)
	if r.h.isReleased() {
		var zero T
		return zero, ErrClosed
	}
	return r.h.c.recv(ctx, nil)
}

// Clone returns a new Receiver on the same channel.
// Cloning a closed Receiver, or one whose last sibling is being closed
// concurrently, returns another closed Receiver.
func (r *Receiver[T]) Clone() *Receiver[T] {
	if r.h.isReleased() || !acquire(&r.h.c.receivers) {
		return newReceiver(deadHandle(r.h.c, true))
	}
	return newReceiver(&handle[T]{c: r.h.c, receiver: true})
}

// Close releases this Receiver. When the last Receiver is released, every
// send fails with ErrDisconnected. Close is idempotent.
func (r *Receiver[T]) Close() error {
	r.cleanup.Stop()
	r.h.release()
	return nil
}

// IsDisconnected reports whether every Sender has been released.
// Queued messages may still be received.
func (r *Receiver[T]) IsDisconnected() bool {
	return closed(r.h.c.sendersGone)
}

// Len returns the number of queued messages.
func (r *Receiver[T]) Len() int { return r.h.c.len() }

// Cap returns the channel capacity, or -1 if it is unbounded.
func (r *Receiver[T]) Cap() int { return r.h.c.cap() }
