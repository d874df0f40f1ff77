// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"context"
	"errors"
	"time"

	"code.hybscloud.com/duplex/mpmc"
)

// Outbound is the sending half of a one-directional channel.
type Outbound[T any] interface {
	Send(v T) error
	TrySend(v T) error
	SendTimeout(v T, d time.Duration) error
	SendContext(ctx context.Context, v T) error
	Clone() Outbound[T]
	Close() error
}

// Inbound is the receiving half of a one-directional channel.
type Inbound[T any] interface {
	Recv() (T, error)
	TryRecv() (T, error)
	RecvTimeout(d time.Duration) (T, error)
	RecvContext(ctx context.Context) (T, error)
	Clone() Inbound[T]
	Close() error
}

// Factory creates one one-directional channel and returns its two halves.
type Factory[T any] func() (Outbound[T], Inbound[T])

// Endpoint is one side of a bidirectional channel pair. It sends T to its
// peer and receives U from it. An Endpoint is safe for concurrent use.
//
// The two directions are independent channels: a full, empty or
// disconnected direction never affects the other one.
type Endpoint[T, U any] struct {
	tx     Outbound[T]
	rx     Inbound[U]
	serial Serial
}

// Pair creates a connected pair of endpoints from one channel per
// direction. The first endpoint sends on the T channel and receives on the
// U channel; the second endpoint holds the opposite halves.
func Pair[T, U any](newT Factory[T], newU Factory[U]) (*Endpoint[T, U], *Endpoint[U, T]) {
	s := nextSerial()
	txT, rxT := newT()
	txU, rxU := newU()
	return &Endpoint[T, U]{tx: txT, rx: rxU, serial: s},
		&Endpoint[U, T]{tx: txU, rx: rxT, serial: s}
}

// Unbounded creates a connected pair of endpoints over unbounded channels.
// Sends never block and never fail for capacity.
func Unbounded[T, U any]() (*Endpoint[T, U], *Endpoint[U, T]) {
	return Pair[T, U](unbounded[T], unbounded[U])
}

// Bounded creates a connected pair of endpoints whose channels each hold
// at most capacity messages. Capacity 0 yields rendezvous channels in both
// directions. Bounded panics if capacity is negative.
//
// Nothing prevents both sides from blocking on a full outbound channel at
// the same time; protocols must be designed to avoid that.
func Bounded[T, U any](capacity int) (*Endpoint[T, U], *Endpoint[U, T]) {
	if capacity < 0 {
		panic("duplex: negative capacity")
	}
	return Pair[T, U](bounded[T](capacity), bounded[U](capacity))
}

// Serial returns the serial number of the pairing this endpoint belongs to.
// Both endpoints of a pair and all their clones share it.
func (ep *Endpoint[T, U]) Serial() Serial {
	return ep.serial
}

// Send sends v to the peer, blocking while a bounded outbound channel is
// full. It returns ErrDisconnected once every clone of the peer has closed
// its receiving side.
func (ep *Endpoint[T, U]) Send(v T) error {
	return ep.tx.Send(v)
}

// TrySend sends v without blocking. It returns ErrFull when the outbound
// channel has no free capacity.
func (ep *Endpoint[T, U]) TrySend(v T) error {
	return ep.tx.TrySend(v)
}

// SendTimeout is Send bounded by d. It returns ErrTimeout if d elapses first.
func (ep *Endpoint[T, U]) SendTimeout(v T, d time.Duration) error {
	return ep.tx.SendTimeout(v, d)
}

// SendContext is Send bounded by ctx.
func (ep *Endpoint[T, U]) SendContext(ctx context.Context, v T) error {
	return ep.tx.SendContext(ctx, v)
}

// Recv receives the next message from the peer, blocking while the inbound
// channel is empty. It returns ErrDisconnected once the inbound channel is
// drained and every clone of the peer has closed its sending side.
func (ep *Endpoint[T, U]) Recv() (U, error) {
	return ep.rx.Recv()
}

// TryRecv receives without blocking. It returns ErrEmpty when no message
// is queued.
func (ep *Endpoint[T, U]) TryRecv() (U, error) {
	return ep.rx.TryRecv()
}

// RecvTimeout is Recv bounded by d. It returns ErrTimeout if d elapses first.
func (ep *Endpoint[T, U]) RecvTimeout(d time.Duration) (U, error) {
	return ep.rx.RecvTimeout(d)
}

// RecvContext is Recv bounded by ctx.
func (ep *Endpoint[T, U]) RecvContext(ctx context.Context) (U, error) {
	return ep.rx.RecvContext(ctx)
}

// Clone returns another endpoint in the same pairing. The clone shares
// both channels with ep; each must be closed independently.
func (ep *Endpoint[T, U]) Clone() *Endpoint[T, U] {
	return &Endpoint[T, U]{tx: ep.tx.Clone(), rx: ep.rx.Clone(), serial: ep.serial}
}

// Close releases both halves held by this endpoint.
func (ep *Endpoint[T, U]) Close() error {
	return errors.Join(ep.tx.Close(), ep.rx.Close())
}

// CloseSend releases only the sending half. The peer drains what was
// sent and then observes ErrDisconnected; the reverse direction is
// unaffected.
func (ep *Endpoint[T, U]) CloseSend() error {
	return ep.tx.Close()
}

// CloseRecv releases only the receiving half. Once every clone has done
// so, the peer's sends fail with ErrDisconnected.
func (ep *Endpoint[T, U]) CloseRecv() error {
	return ep.rx.Close()
}

// Outbound returns the sending half of this endpoint.
func (ep *Endpoint[T, U]) Outbound() Outbound[T] {
	return ep.tx
}

// Inbound returns the receiving half of this endpoint.
func (ep *Endpoint[T, U]) Inbound() Inbound[U] {
	return ep.rx
}

// sender and receiver adapt mpmc handles to Outbound and Inbound.
type sender[T any] struct{ *mpmc.Sender[T] }

func (s sender[T]) Clone() Outbound[T] { return sender[T]{s.Sender.Clone()} }

type receiver[T any] struct{ *mpmc.Receiver[T] }

func (r receiver[T]) Clone() Inbound[T] { return receiver[T]{r.Receiver.Clone()} }

func unbounded[T any]() (Outbound[T], Inbound[T]) {
	tx, rx := mpmc.Unbounded[T]()
	return sender[T]{tx}, receiver[T]{rx}
}

func bounded[T any](capacity int) Factory[T] {
	return func() (Outbound[T], Inbound[T]) {
		tx, rx := mpmc.Bounded[T](capacity)
		return sender[T]{tx}, receiver[T]{rx}
	}
}
