// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	// ErrDisconnected reports that the counterpart side of the channel has
	// been released entirely. It is permanent.
	ErrDisconnected = errors.New("mpmc: channel disconnected")

	// ErrTimeout reports that a bounded wait elapsed before the operation
	// could complete.
	ErrTimeout = errors.New("mpmc: operation timed out")

	// ErrClosed reports an operation on a handle its owner already closed.
	ErrClosed = errors.New("mpmc: use of closed handle")

	// ErrFull reports that a non-blocking send found no free capacity.
	ErrFull error = wouldBlock("mpmc: channel full")

	// ErrEmpty reports that a non-blocking receive found no queued message.
	ErrEmpty error = wouldBlock("mpmc: channel empty")
)

// wouldBlock is a backpressure error that also matches iox.ErrWouldBlock.
type wouldBlock string

func (e wouldBlock) Error() string { return string(e) }

func (e wouldBlock) Is(target error) bool { return target == iox.ErrWouldBlock }
