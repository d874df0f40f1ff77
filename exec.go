// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/kont"
)

// endpointHandler implements kont.Handler for Send and Recv effects on one
// endpoint. Operations block; an error short-circuits the protocol with
// Left(err).
type endpointHandler[T, U, R any] struct {
	ep *Endpoint[T, U]
}

// Dispatch implements kont.Handler.
func (h endpointHandler[T, U, R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	v, err := h.ep.dispatch(op, true)
	if err != nil {
		return kont.Left[error, R](err), false
	}
	return v, true
}

// Exec runs a Cont-world protocol on ep, blocking on each operation.
// It stops at the first failed operation and returns its error, for
// example ErrDisconnected when the peer has gone.
func Exec[T, U, R any](ep *Endpoint[T, U], protocol kont.Eff[R]) (R, error) {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return unwrap(kont.Handle(wrapped, endpointHandler[T, U, R]{ep: ep}))
}

// ExecExpr runs an Expr-world protocol on ep, blocking on each operation.
func ExecExpr[T, U, R any](ep *Endpoint[T, U], protocol kont.Expr[R]) (R, error) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return unwrap(kont.HandleExpr(wrapped, endpointHandler[T, U, R]{ep: ep}))
}

func unwrap[R any](e kont.Either[error, R]) (R, error) {
	if err, ok := e.GetLeft(); ok {
		var zero R
		return zero, err
	}
	r, _ := e.GetRight()
	return r, nil
}
