// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/kont"
)

// Send is the effect operation for sending a value of type T.
// Perform(Send[T]{Value: v}) sends v to the peer endpoint.
type Send[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// Recv is the effect operation for receiving a value of type T.
// Perform(Recv[T]{}) receives a typed value from the peer.
type Recv[T any] struct {
	kont.Phantom[T]
}

// sent is the pre-boxed Resumed value for a completed Send.
var sent kont.Resumed = struct{}{}

// dispatch performs op on ep. With block set it waits on the blocking
// variants; otherwise it returns ErrFull or ErrEmpty at the backpressure
// boundary. Only Send[T] and Recv[U] are handled on an Endpoint[T, U].
func (ep *Endpoint[T, U]) dispatch(op kont.Operation, block bool) (kont.Resumed, error) {
	switch o := op.(type) {
	case Send[T]:
		var err error
		if block {
			err = ep.Send(o.Value)
		} else {
			err = ep.TrySend(o.Value)
		}
		if err != nil {
			return nil, err
		}
		return sent, nil
	case Recv[U]:
		var v U
		var err error
		if block {
			v, err = ep.Recv()
		} else {
			v, err = ep.TryRecv()
		}
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	panic("duplex: unhandled effect")
}
