// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"sync"

	"code.hybscloud.com/iox"
)

type node[T any] struct {
	value T
	next  *node[T]
}

// list is the unbounded flavor: a singly linked FIFO under one mutex.
type list[T any] struct {
	mu   sync.Mutex
	head *node[T]
	tail *node[T]
	n    int
}

func (l *list[T]) tryPush(v T) error {
	n := &node[T]{value: v}
	l.mu.Lock()
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.n++
	l.mu.Unlock()
	return nil
}

func (l *list[T]) tryPop() (zero T, _ error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.head
	if current == nil {
		return zero, iox.ErrWouldBlock
	}
	l.head = current.next
	if l.head == nil {
		l.tail = nil
	}
	l.n--
	current.next = nil
	return current.value, nil
}

func (l *list[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n
}

func (l *list[T]) cap() int { return -1 }
