// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended operation on ep without blocking.
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On ErrFull or ErrEmpty (both match iox.ErrWouldBlock), the suspension is
// unconsumed and may be retried after the peer makes progress. Any other
// error is terminal for the operation; the caller should Discard the
// suspension.
func Advance[T, U, R any](ep *Endpoint[T, U], susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	v, err := ep.dispatch(susp.Op(), false)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
