//go:build linux

package uring

import (
	"sync/atomic"
	"unsafe"
)

// PushSQE copies the entry into the next free submission slot and publishes
// it with a release store of the tail, so the kernel never observes a
// partially written entry. It reports false when the ring is full; the
// caller is expected to retry after draining completions.
func (ring *Ring) PushSQE(sqe *SubmissionQueueEntry) bool {
	sq := ring.sqRing
	head := atomic.LoadUint32(sq.head)
	tail := atomic.LoadUint32(sq.tail)
	if tail-head >= *sq.ringEntries {
		return false
	}

	index := tail & *sq.ringMask
	*(*SubmissionQueueEntry)(
		unsafe.Add(unsafe.Pointer(sq.sqes), uintptr(index)*unsafe.Sizeof(SubmissionQueueEntry{})),
	) = *sqe
	*(*uint32)(
		unsafe.Add(unsafe.Pointer(sq.array), uintptr(index)*unsafe.Sizeof(uint32(0))),
	) = index

	atomic.StoreUint32(sq.tail, tail+1)
	return true
}

func (ring *Ring) SQReady() uint32 {
	return atomic.LoadUint32(ring.sqRing.tail) - atomic.LoadUint32(ring.sqRing.head)
}

func (ring *Ring) SQSpaceLeft() uint32 {
	return *ring.sqRing.ringEntries - ring.SQReady()
}
