// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex_test

import (
	"errors"
	"fmt"
	"testing"

	"code.hybscloud.com/duplex"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

func TestExecSendRecv(t *testing.T) {
	// !int.?string ↔ ?int.!string
	client, server := duplex.Unbounded[int, string]()
	defer client.Close()
	defer server.Close()

	done := make(chan error, 1)
	go func() {
		_, err := duplex.Exec(server, duplex.RecvBind(func(n int) kont.Eff[struct{}] {
			return duplex.SendThen(fmt.Sprintf("got %d", n), kont.Pure(struct{}{}))
		}))
		done <- err
	}()

	got, err := duplex.Exec(client, duplex.SendThen(42,
		duplex.RecvBind(func(s string) kont.Eff[string] {
			return kont.Pure(s)
		}),
	))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if got != "got 42" {
		t.Fatalf("client got %q, want %q", got, "got 42")
	}
	if err := <-done; err != nil {
		t.Fatalf("server: %v", err)
	}
}

func TestExecExprSendRecv(t *testing.T) {
	client, server := duplex.Unbounded[int, int]()
	defer client.Close()
	defer server.Close()

	go duplex.ExecExpr(server, kont.Reify(duplex.RecvBind(func(n int) kont.Eff[int] {
		return duplex.SendThen(n*2, kont.Pure(n))
	})))

	got, err := duplex.ExecExpr(client, kont.Reify(duplex.SendThen(21,
		duplex.RecvBind(func(n int) kont.Eff[int] { return kont.Pure(n) }),
	)))
	if err != nil || got != 42 {
		t.Fatalf("client got (%d, %v), want (42, nil)", got, err)
	}
}

func TestExecStopsOnDisconnect(t *testing.T) {
	client, server := duplex.Unbounded[int, int]()
	defer client.Close()
	server.Close()

	reached := false
	_, err := duplex.Exec(client, duplex.RecvBind(func(n int) kont.Eff[int] {
		reached = true
		return kont.Pure(n)
	}))
	if !errors.Is(err, duplex.ErrDisconnected) {
		t.Fatalf("Exec got %v, want ErrDisconnected", err)
	}
	if reached {
		t.Fatal("protocol continued past a failed Recv")
	}
}

func TestStepInspectOperations(t *testing.T) {
	protocol := kont.Reify(duplex.SendThen(42, kont.Pure("done")))

	_, susp := duplex.Step(protocol)
	if susp == nil {
		t.Fatal("expected suspension for Send")
	}
	op, ok := susp.Op().(duplex.Send[int])
	if !ok {
		t.Fatalf("expected Send[int], got %T", susp.Op())
	}
	if op.Value != 42 {
		t.Fatalf("Send value got %d, want 42", op.Value)
	}

	ep, peer := duplex.Unbounded[int, int]()
	defer ep.Close()
	defer peer.Close()
	result, susp, err := duplex.Advance(ep, susp)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if susp != nil {
		t.Fatal("expected completion after Send")
	}
	if result != "done" {
		t.Fatalf("result got %q, want %q", result, "done")
	}
	if v, err := peer.TryRecv(); err != nil || v != 42 {
		t.Fatalf("peer got (%d, %v), want (42, nil)", v, err)
	}
}

func TestAdvanceWouldBlock(t *testing.T) {
	protocol := kont.Reify(duplex.RecvBind(func(n int) kont.Eff[int] {
		return kont.Pure(n)
	}))
	_, susp := duplex.Step(protocol)

	ep, peer := duplex.Unbounded[int, int]()
	defer ep.Close()
	defer peer.Close()

	_, retry, err := duplex.Advance(ep, susp)
	if !errors.Is(err, iox.ErrWouldBlock) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	if retry != susp {
		t.Fatal("suspension should be returned unconsumed on error")
	}

	peer.Send(99)
	result, next, err := duplex.Advance(ep, retry)
	if err != nil {
		t.Fatalf("Advance after Send: %v", err)
	}
	if next != nil || result != 99 {
		t.Fatalf("got (%d, %v), want (99, nil)", result, next)
	}
}

func TestAdvanceFullOnRendezvous(t *testing.T) {
	protocol := kont.Reify(duplex.SendThen(1, kont.Pure(struct{}{})))
	_, susp := duplex.Step(protocol)

	ep, peer := duplex.Bounded[int, int](0)
	defer ep.Close()
	defer peer.Close()

	_, retry, err := duplex.Advance(ep, susp)
	if !errors.Is(err, duplex.ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	retry.Discard()
}

func TestStepAdvanceConversation(t *testing.T) {
	client, server := duplex.Unbounded[int, string]()
	defer client.Close()
	defer server.Close()

	done := make(chan error, 1)
	go func() {
		_, err := execExpr(server, kont.Reify(duplex.RecvBind(func(n int) kont.Eff[struct{}] {
			return duplex.SendThen(fmt.Sprintf("n=%d", n), kont.Pure(struct{}{}))
		})))
		done <- err
	}()

	got, err := execExpr(client, kont.Reify(duplex.SendThen(7,
		duplex.RecvBind(func(s string) kont.Eff[string] { return kont.Pure(s) }),
	)))
	if err != nil || got != "n=7" {
		t.Fatalf("client got (%q, %v), want (\"n=7\", nil)", got, err)
	}
	if err := <-done; err != nil {
		t.Fatalf("server: %v", err)
	}
}

func TestRunBidirectional(t *testing.T) {
	// !int.?string.!int ↔ ?int.!string.?int
	client := duplex.SendThen(7,
		duplex.RecvBind(func(s string) kont.Eff[string] {
			return duplex.SendThen(len(s), kont.Pure(s))
		}),
	)
	server := duplex.RecvBind(func(n int) kont.Eff[int] {
		return duplex.SendThen(fmt.Sprintf("n=%d", n),
			duplex.RecvBind(func(m int) kont.Eff[int] {
				return kont.Pure(n + m)
			}),
		)
	})

	clientResult, serverResult, err := duplex.Run[int, string, string, int](client, server)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if clientResult != "n=7" {
		t.Fatalf("client got %q, want %q", clientResult, "n=7")
	}
	if serverResult != 10 {
		t.Fatalf("server got %d, want 10", serverResult)
	}
}

func TestRunPeerFinishedEarly(t *testing.T) {
	// The server ends without replying; the client's Recv sees disconnect.
	client := duplex.SendThen(1,
		duplex.RecvBind(func(n int) kont.Eff[int] { return kont.Pure(n) }),
	)
	server := duplex.RecvBind(func(n int) kont.Eff[int] { return kont.Pure(n) })

	_, serverResult, err := duplex.Run[int, int, int, int](client, server)
	if !errors.Is(err, duplex.ErrDisconnected) {
		t.Fatalf("Run got %v, want ErrDisconnected", err)
	}
	if serverResult != 1 {
		t.Fatalf("server got %d, want 1", serverResult)
	}
}

func TestDispatchUnhandledPanics(t *testing.T) {
	ep, peer := duplex.Unbounded[int, int]()
	defer ep.Close()
	defer peer.Close()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unhandled effect")
		}
		msg, ok := r.(string)
		if !ok || msg != "duplex: unhandled effect" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	// The endpoint sends int; a string Send has no handler.
	duplex.Exec(ep, duplex.SendThen("wrong", kont.Pure(struct{}{})))
}

func TestEndpointDelegation(t *testing.T) {
	// A hands its sub-endpoint to B; B talks to C through it.
	subA, subC := duplex.Unbounded[string, string]()
	defer subC.Close()
	a, b := duplex.Unbounded[*duplex.Endpoint[string, string], struct{}]()
	defer a.Close()
	defer b.Close()

	if err := a.Send(subA); err != nil {
		t.Fatalf("delegate: %v", err)
	}
	delegated, err := b.Recv()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if delegated.Serial() != subC.Serial() {
		t.Fatal("delegated endpoint lost its pairing")
	}
	delegated.Send("hello")
	delegated.Close()

	if v, err := subC.Recv(); err != nil || v != "hello" {
		t.Fatalf("C got (%q, %v), want (\"hello\", nil)", v, err)
	}
	if _, err := subC.Recv(); !errors.Is(err, duplex.ErrDisconnected) {
		t.Fatalf("C got %v after delegate closed, want ErrDisconnected", err)
	}
}
