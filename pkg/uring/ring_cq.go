//go:build linux

package uring

import (
	"sync/atomic"
	"unsafe"
)

// PeekCQE returns the oldest unconsumed completion, or nil when the ring is
// empty. The entry stays owned by the ring until CQAdvance publishes the new
// head back to the kernel.
func (ring *Ring) PeekCQE() *CompletionQueueEvent {
	cq := ring.cqRing
	head := atomic.LoadUint32(cq.head)
	tail := atomic.LoadUint32(cq.tail)
	if head == tail {
		return nil
	}
	return (*CompletionQueueEvent)(
		unsafe.Add(unsafe.Pointer(cq.cqes), uintptr(head&*cq.ringMask)*unsafe.Sizeof(CompletionQueueEvent{})),
	)
}

// WaitCQE blocks until at least one completion is available. The returned
// entry is not consumed; call CQAdvance once done with it.
func (ring *Ring) WaitCQE() (*CompletionQueueEvent, error) {
	for {
		if cqe := ring.PeekCQE(); cqe != nil {
			return cqe, nil
		}
		if _, err := ring.Enter(0, 1, IORING_ENTER_GETEVENTS); err != nil {
			return nil, err
		}
	}
}

func (ring *Ring) CQAdvance(numberOfCQEs uint32) {
	cq := ring.cqRing
	atomic.StoreUint32(cq.head, atomic.LoadUint32(cq.head)+numberOfCQEs)
}

func (ring *Ring) CQReady() uint32 {
	return atomic.LoadUint32(ring.cqRing.tail) - atomic.LoadUint32(ring.cqRing.head)
}
