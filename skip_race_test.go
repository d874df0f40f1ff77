// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package duplex_test

import "testing"

// skipRace skips tests that exercise the lfq MPMC ring behind bounded
// channels. The race detector tracks per-variable happens-before and
// cannot see the ring's cross-variable memory ordering (store-release on
// data, load-acquire on sequence), producing false positives.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: MPMC uses cross-variable memory ordering")
}
