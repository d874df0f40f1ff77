// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpmc provides multi-producer multi-consumer FIFO channels with
// reference-counted handles and disconnect detection.
//
// # Flavors
//
//   - [Unbounded]: linked-list queue. Sends never block and never fail for capacity.
//   - [Bounded] with capacity > 0: lock-free ring from [code.hybscloud.com/lfq],
//     shared by any number of senders and receivers.
//   - [Bounded] with capacity 0: rendezvous. A send completes only when a
//     receive is ready at the same moment.
//
// # Disconnect
//
// A channel stays open while at least one [Sender] and one [Receiver] exist.
// Releasing every Sender makes receives return [ErrDisconnected] once the
// queue is drained. Releasing every Receiver makes sends return
// [ErrDisconnected] immediately. A handle is released by Close, or by the
// garbage collector once it becomes unreachable without Close.
//
// # Backpressure
//
// [ErrFull] and [ErrEmpty] match [code.hybscloud.com/iox.ErrWouldBlock]
// under [errors.Is], so non-blocking callers can treat both as a retry signal.
package mpmc
