//go:build linux

package uring

import (
	"syscall"
	"unsafe"
)

const (
	sysSetup = 425
)

func New(options ...Option) (*Ring, error) {
	opts := Options{
		Entries: DefaultEntries,
		Flags:   0,
	}
	for _, o := range options {
		o(&opts)
	}
	entries := RoundupPow2(opts.Entries)

	params := &Params{}
	params.flags = opts.Flags

	ring := &Ring{
		sqRing: &SubmissionQueue{},
		cqRing: &CompletionQueue{},
		ringFd: -1,
	}
	if err := ring.setup(entries, params); err != nil {
		return nil, err
	}
	return ring, nil
}

type Ring struct {
	sqRing   *SubmissionQueue
	cqRing   *CompletionQueue
	flags    uint32
	features uint32
	ringFd   int
}

func (ring *Ring) Fd() int {
	return ring.ringFd
}

func (ring *Ring) Flags() uint32 {
	return ring.flags
}

func (ring *Ring) Features() uint32 {
	return ring.features
}

func (ring *Ring) SQEntries() uint32 {
	return *ring.sqRing.ringEntries
}

func (ring *Ring) CQEntries() uint32 {
	return *ring.cqRing.ringEntries
}

func (ring *Ring) setup(entries uint32, params *Params) error {
	fdPtr, _, errno := syscall.Syscall(sysSetup, uintptr(entries), uintptr(unsafe.Pointer(params)), 0)
	if errno != 0 {
		return errnoErr(errno)
	}
	fd := int(fdPtr)

	if err := mmapRings(fd, params, ring.sqRing, ring.cqRing); err != nil {
		_ = syscall.Close(fd)
		return err
	}

	ring.features = params.features
	ring.flags = params.flags
	ring.ringFd = fd
	syscall.CloseOnExec(fd)
	return nil
}

func (ring *Ring) Close() (err error) {
	sq := ring.sqRing
	cq := ring.cqRing

	if sq.sqes != nil {
		_ = munmap(uintptr(unsafe.Pointer(sq.sqes)), uintptr(*sq.ringEntries)*unsafe.Sizeof(SubmissionQueueEntry{}))
		sq.sqes = nil
	}
	unmapRings(sq, cq)

	if ring.ringFd != -1 {
		err = syscall.Close(ring.ringFd)
		ring.ringFd = -1
	}
	return
}

// mmapRings maps the submission and completion index rings, jointly when the
// kernel reports IORING_FEAT_SINGLE_MMAP, and the SQE array which lives in a
// mapping of its own. Any region already mapped is released on failure.
func mmapRings(fd int, params *Params, sq *SubmissionQueue, cq *CompletionQueue) error {
	sq.ringSize = uintptr(params.sqOff.array) + uintptr(params.sqEntries)*unsafe.Sizeof(uint32(0))
	cq.ringSize = uintptr(params.cqOff.cqes) + uintptr(params.cqEntries)*unsafe.Sizeof(CompletionQueueEvent{})

	singleMmap := params.features&IORING_FEAT_SINGLE_MMAP != 0
	if singleMmap {
		if cq.ringSize > sq.ringSize {
			sq.ringSize = cq.ringSize
		}
		cq.ringSize = sq.ringSize
	}

	sqPtr, sqErr := mmap(0, sq.ringSize, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED|syscall.MAP_POPULATE, fd, IORING_OFF_SQ_RING)
	if sqErr != nil {
		return sqErr
	}
	sq.ringPtr = sqPtr

	if singleMmap {
		cq.ringPtr = sqPtr
	} else {
		cqPtr, cqErr := mmap(0, cq.ringSize, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED|syscall.MAP_POPULATE, fd, IORING_OFF_CQ_RING)
		if cqErr != nil {
			unmapRings(sq, cq)
			return cqErr
		}
		cq.ringPtr = cqPtr
	}

	sqesSize := uintptr(params.sqEntries) * unsafe.Sizeof(SubmissionQueueEntry{})
	sqesPtr, sqesErr := mmap(0, sqesSize, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED|syscall.MAP_POPULATE, fd, IORING_OFF_SQES)
	if sqesErr != nil {
		unmapRings(sq, cq)
		return sqesErr
	}
	sq.sqes = (*SubmissionQueueEntry)(sqesPtr)

	sq.head = (*uint32)(unsafe.Add(sq.ringPtr, params.sqOff.head))
	sq.tail = (*uint32)(unsafe.Add(sq.ringPtr, params.sqOff.tail))
	sq.ringMask = (*uint32)(unsafe.Add(sq.ringPtr, params.sqOff.ringMask))
	sq.ringEntries = (*uint32)(unsafe.Add(sq.ringPtr, params.sqOff.ringEntries))
	sq.flags = (*uint32)(unsafe.Add(sq.ringPtr, params.sqOff.flags))
	sq.dropped = (*uint32)(unsafe.Add(sq.ringPtr, params.sqOff.dropped))
	sq.array = (*uint32)(unsafe.Add(sq.ringPtr, params.sqOff.array))

	cq.head = (*uint32)(unsafe.Add(cq.ringPtr, params.cqOff.head))
	cq.tail = (*uint32)(unsafe.Add(cq.ringPtr, params.cqOff.tail))
	cq.ringMask = (*uint32)(unsafe.Add(cq.ringPtr, params.cqOff.ringMask))
	cq.ringEntries = (*uint32)(unsafe.Add(cq.ringPtr, params.cqOff.ringEntries))
	cq.flags = (*uint32)(unsafe.Add(cq.ringPtr, params.cqOff.flags))
	cq.overflow = (*uint32)(unsafe.Add(cq.ringPtr, params.cqOff.overflow))
	cq.cqes = (*CompletionQueueEvent)(unsafe.Add(cq.ringPtr, params.cqOff.cqes))
	return nil
}

func unmapRings(sq *SubmissionQueue, cq *CompletionQueue) {
	if cq.ringPtr != nil && cq.ringPtr != sq.ringPtr {
		_ = munmap(uintptr(cq.ringPtr), cq.ringSize)
	}
	if sq.ringPtr != nil {
		_ = munmap(uintptr(sq.ringPtr), sq.ringSize)
	}
	sq.ringPtr = nil
	cq.ringPtr = nil
}
