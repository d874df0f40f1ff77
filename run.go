// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run creates an unbounded endpoint pair, runs both Cont-world protocols,
// and returns both results. Side a sends T and receives U; side b the
// reverse. Interleaves execution of both sides on the calling goroutine
// using adaptive backoff (iox.Backoff) when neither side can make
// progress. Does not spawn goroutines.
//
// A side's endpoint is closed as soon as its protocol completes, so a peer
// still waiting to receive fails with ErrDisconnected instead of waiting
// forever. The returned error joins the errors of both sides.
func Run[T, U, A, B any](a kont.Eff[A], b kont.Eff[B]) (A, B, error) {
	return RunExpr[T, U](kont.Reify(a), kont.Reify(b))
}

// RunExpr is Run for Expr-world protocols.
func RunExpr[T, U, A, B any](a kont.Expr[A], b kont.Expr[B]) (A, B, error) {
	epA, epB := Unbounded[T, U]()
	sideA := startSide(epA, a)
	sideB := startSide(epB, b)
	var bo iox.Backoff
	for sideA.pending() || sideB.pending() {
		progressA := sideA.advance()
		progressB := sideB.advance()
		if progressA || progressB {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
	return sideA.result, sideB.result, errors.Join(sideA.err, sideB.err)
}

// side is one protocol being stepped against its endpoint.
type side[T, U, R any] struct {
	ep     *Endpoint[T, U]
	susp   *kont.Suspension[R]
	result R
	err    error
}

func startSide[T, U, R any](ep *Endpoint[T, U], protocol kont.Expr[R]) *side[T, U, R] {
	s := &side[T, U, R]{ep: ep}
	s.result, s.susp = Step(protocol)
	if s.susp == nil {
		ep.Close()
	}
	return s
}

func (s *side[T, U, R]) pending() bool {
	return s.susp != nil
}

// advance dispatches the pending operation once and reports progress.
func (s *side[T, U, R]) advance() bool {
	if s.susp == nil {
		return false
	}
	result, next, err := Advance(s.ep, s.susp)
	switch {
	case err == nil:
		s.result, s.susp = result, next
	case errors.Is(err, iox.ErrWouldBlock):
		return false
	default:
		s.susp.Discard()
		s.susp = nil
		s.err = err
	}
	if s.susp == nil {
		s.ep.Close()
	}
	return true
}
