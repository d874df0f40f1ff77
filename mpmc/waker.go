// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import "sync"

// waker parks goroutines until the next state change of one condition.
// arm returns a channel that is closed by the next notify. Waiters must
// re-check their condition after arming and before blocking.
type waker struct {
	mu sync.Mutex
	ch chan struct{}
}

func (w *waker) arm() <-chan struct{} {
	w.mu.Lock()
	if w.ch == nil {
		w.ch = make(chan struct{})
	}
	ch := w.ch
	w.mu.Unlock()
	return ch
}

// notify wakes every goroutine armed since the previous notify.
func (w *waker) notify() {
	w.mu.Lock()
	if w.ch != nil {
		close(w.ch)
		w.ch = nil
	}
	w.mu.Unlock()
}
