// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/kont"
)

// SendThen sends a value and then continues with next.
// Fuses Perform(Send[T]{Value: v}) + Then.
func SendThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send[T]{Value: v}), next)
}

// RecvBind receives a value and passes it to f.
// Fuses Perform(Recv[T]{}) + Bind.
func RecvBind[T, B any](f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv[T]{}), f)
}
