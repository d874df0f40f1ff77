// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package duplex provides bidirectional channels: paired endpoints that
// can each both send and receive.
//
// An endpoint pair is two one-directional multi-producer multi-consumer
// channels from [code.hybscloud.com/duplex/mpmc], one per direction, with
// the halves swapped between the two endpoints. What one endpoint sends,
// the other receives, in FIFO order per direction.
//
// # Architecture
//
//   - Construction: [Unbounded] and [Bounded] create an [Endpoint] pair. [Pair] composes any channel satisfying [Outbound] and [Inbound].
//   - Directions: Fully independent. Each has its own capacity, backpressure and disconnect state.
//   - Lifecycle: [Endpoint.Clone] adds producers and consumers on one side. [Endpoint.Close] releases both halves; a direction disconnects once every clone on one of its sides is released.
//   - Errors: [ErrDisconnected], [ErrFull], [ErrEmpty], [ErrTimeout] and [ErrClosed] are returned, never panicked. ErrFull and ErrEmpty match [code.hybscloud.com/iox.ErrWouldBlock].
//
// # Protocols
//
// Conversations can also be written as effect-typed protocols on
// [code.hybscloud.com/kont]: [Send] and [Recv] operations, composed with
// [SendThen] and [RecvBind], evaluated by [Exec] (blocking), stepped by
// [Step] and [Advance] (non-blocking), or run side by side with [Run].
//
// # Example
//
//	left, right := duplex.Unbounded[int, bool]()
//	defer left.Close()
//	defer right.Close()
//
//	left.Send(4)
//	n, _ := right.Recv() // 4
//	right.Send(n > 0)
//	ok, _ := left.Recv() // true
package duplex
