// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "code.hybscloud.com/duplex/mpmc"

// Errors returned by endpoint operations. Each applies to one direction
// only. ErrFull and ErrEmpty also match iox.ErrWouldBlock under errors.Is.
var (
	ErrDisconnected = mpmc.ErrDisconnected
	ErrFull         = mpmc.ErrFull
	ErrEmpty        = mpmc.ErrEmpty
	ErrTimeout      = mpmc.ErrTimeout
	ErrClosed       = mpmc.ErrClosed
)
