//go:build linux

package uring

import (
	"syscall"
	"unsafe"
)

const (
	sysRegister = 427
)

const (
	IORING_REGISTER_PROBE uint32 = 8
)

func (ring *Ring) doRegister(opcode uint32, arg unsafe.Pointer, nrArgs uint32) (uint, error) {
	ret, _, errno := syscall.Syscall6(
		sysRegister,
		uintptr(ring.ringFd),
		uintptr(opcode),
		uintptr(arg),
		uintptr(nrArgs),
		0,
		0,
	)
	if errno != 0 {
		return 0, errnoErr(errno)
	}
	return uint(ret), nil
}

func (ring *Ring) RegisterProbe(probe *Probe, nrOps uint32) (uint, error) {
	return ring.doRegister(IORING_REGISTER_PROBE, unsafe.Pointer(probe), nrOps)
}
