// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"math/bits"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// minRing is the smallest ring handed to lfq.
const minRing = 2

// array is the bounded flavor, a lock-free lfq MPMC ring.
//
// n counts reserved and occupied slots and enforces the exact capacity:
// the ring itself is rounded up to a power of two with at least one spare
// slot. A producer reserves a slot on n before Enqueue and a consumer
// frees it after Dequeue, so occupancy never exceeds n.
type array[T any] struct {
	ring lfq.MPMC[T]
	n    atomix.Int64
	size int
}

func newArray[T any](capacity int) *array[T] {
	a := &array[T]{size: capacity}
	a.ring.Init(ringCapacity(capacity + 1))
	return a
}

// ringCapacity rounds capacity up to the next power of two.
func ringCapacity(capacity int) int {
	if capacity <= minRing {
		return minRing
	}
	return 1 << bits.Len(uint(capacity-1))
}

// reserve claims one slot of capacity on n.
func (a *array[T]) reserve() bool {
	for {
		n := a.n.Load()
		if n >= int64(a.size) {
			return false
		}
		if a.n.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (a *array[T]) tryPush(v T) error {
	if !a.reserve() {
		return iox.ErrWouldBlock
	}
	if err := a.ring.Enqueue(&v); err != nil {
		a.n.Add(-1)
		return err
	}
	return nil
}

func (a *array[T]) tryPop() (T, error) {
	v, err := a.ring.Dequeue()
	if err != nil {
		return v, err
	}
	a.n.Add(-1)
	return v, nil
}

func (a *array[T]) len() int {
	return int(min(max(a.n.Load(), 0), int64(a.size)))
}

func (a *array[T]) cap() int { return a.size }
