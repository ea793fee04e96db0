//go:build linux

package uring_test

import (
	"testing"

	"github.com/brickingsoft/uio/pkg/uring"
)

func TestNew(t *testing.T) {
	ring, ringErr := uring.New(uring.WithEntries(4))
	if ringErr != nil {
		t.Fatal(ringErr)
	}
	defer ring.Close()

	t.Log("sq:", ring.SQEntries())
	t.Log("cq:", ring.CQEntries())

	sqe := &uring.SubmissionQueueEntry{}
	sqe.PrepareNop()
	sqe.SetData64(42)
	if !ring.PushSQE(sqe) {
		t.Fatal("push failed on an empty ring")
	}
	if _, subErr := ring.Submit(); subErr != nil {
		t.Fatal(subErr)
	}

	cqe, waitErr := ring.WaitCQE()
	if waitErr != nil {
		t.Fatal(waitErr)
	}
	if cqe.UserData != 42 {
		t.Error("user data:", cqe.UserData)
	}
	if cqe.Res < 0 {
		t.Error("res:", cqe.Res)
	}
	ring.CQAdvance(1)
}

func TestPushSQEFull(t *testing.T) {
	ring, ringErr := uring.New(uring.WithEntries(4))
	if ringErr != nil {
		t.Fatal(ringErr)
	}
	defer ring.Close()

	entries := ring.SQEntries()
	for i := uint32(0); i < entries; i++ {
		sqe := &uring.SubmissionQueueEntry{}
		sqe.PrepareNop()
		sqe.SetData64(uint64(i))
		if !ring.PushSQE(sqe) {
			t.Fatal("push", i, "failed below capacity")
		}
	}
	if ring.SQSpaceLeft() != 0 {
		t.Error("space left:", ring.SQSpaceLeft())
	}

	extra := &uring.SubmissionQueueEntry{}
	extra.PrepareNop()
	if ring.PushSQE(extra) {
		t.Fatal("push succeeded on a full ring")
	}

	if _, enterErr := ring.Enter(entries, entries, uring.IORING_ENTER_GETEVENTS); enterErr != nil {
		t.Fatal(enterErr)
	}
	for i := uint32(0); i < entries; i++ {
		cqe, waitErr := ring.WaitCQE()
		if waitErr != nil {
			t.Fatal(waitErr)
		}
		if cqe.Res < 0 {
			t.Error("res:", cqe.Res)
		}
		ring.CQAdvance(1)
	}

	// capacity restored after draining
	if !ring.PushSQE(extra) {
		t.Error("push failed after drain")
	}
}

func TestProbe(t *testing.T) {
	ring, ringErr := uring.New(uring.WithEntries(4))
	if ringErr != nil {
		t.Fatal(ringErr)
	}
	defer ring.Close()

	probe, probeErr := ring.Probe()
	if probeErr != nil {
		t.Fatal(probeErr)
	}
	for _, op := range []uint8{uring.IORING_OP_READ, uring.IORING_OP_WRITE, uring.IORING_OP_ACCEPT} {
		if !probe.IsSupported(op) {
			t.Error("opcode", op, "not supported")
		}
	}
}
