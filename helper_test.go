// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex_test

import (
	"errors"
	"runtime"
	"time"

	"code.hybscloud.com/duplex"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// execExpr drives a protocol to completion on ep via Step+Advance loop.
// Retries on iox.ErrWouldBlock (peer not ready yet) and stops at any
// other error. Used by stepping tests to exercise the non-blocking path.
func execExpr[T, U, R any](ep *duplex.Endpoint[T, U], protocol kont.Expr[R]) (R, error) {
	result, susp := duplex.Step(protocol)
	for susp != nil {
		var err error
		result, susp, err = duplex.Advance(ep, susp)
		if errors.Is(err, iox.ErrWouldBlock) {
			continue
		}
		if err != nil {
			susp.Discard()
			return result, err
		}
	}
	return result, nil
}

// eventually forces collections until cond holds or a deadline passes.
// Cleanups run on their own goroutine after the collection that frees
// their object.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
