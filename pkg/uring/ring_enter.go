//go:build linux

package uring

import (
	"syscall"
)

const (
	IORING_ENTER_GETEVENTS uint32 = 1 << iota
	IORING_ENTER_SQ_WAKEUP
	IORING_ENTER_SQ_WAIT
	IORING_ENTER_EXT_ARG
)

const (
	sysEnter = 426
)

func (ring *Ring) Enter(toSubmit uint32, minComplete uint32, flags uint32) (uint, error) {
	consumed, _, errno := syscall.Syscall6(
		sysEnter,
		uintptr(ring.ringFd),
		uintptr(toSubmit),
		uintptr(minComplete),
		uintptr(flags),
		0,
		0,
	)
	if errno != 0 {
		return 0, errnoErr(errno)
	}
	return uint(consumed), nil
}

// Submit notifies the kernel of exactly one pending submission.
func (ring *Ring) Submit() (uint, error) {
	return ring.Enter(1, 0, 0)
}
