//go:build linux

package uio

import (
	"syscall"
	"unsafe"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/uio/pkg/uring"
)

// New builds an engine around the caller-owned operation table. The table
// must outlive the engine and no other writer may touch it. Every slot is
// reset to the empty kind here, so a recycled table is safe to pass in.
func New(ops []Operation, options ...Option) (*Engine, error) {
	if version := uring.GetVersion(); version.Invalidate() || version.LT(5, 6, 0) {
		return nil, errors.New(
			"uio: kernel version must >= 5.6",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpSetup),
		)
	}

	opts := Options{}
	for _, o := range options {
		o(&opts)
	}
	ringOptions := make([]uring.Option, 0, 1)
	if opts.Entries > 0 {
		ringOptions = append(ringOptions, uring.WithEntries(opts.Entries))
	}

	ring, ringErr := uring.New(ringOptions...)
	if ringErr != nil {
		return nil, errors.New(
			"uio: ring setup failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpSetup),
			errors.WithWrap(ringErr),
		)
	}

	engine, engineErr := NewWithRing(ring, ops)
	if engineErr != nil {
		_ = ring.Close()
		return nil, engineErr
	}
	return engine, nil
}

// NewWithRing builds an engine over a ring the caller set up, for when ring
// options beyond what New exposes are needed. The engine takes ownership of
// the ring on success; Close releases it. On failure the ring stays with the
// caller.
func NewWithRing(ring *uring.Ring, ops []Operation) (*Engine, error) {
	if len(ops) == 0 {
		return nil, errors.New(
			"uio: operation table is empty",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpSetup),
		)
	}

	probe, probeErr := ring.Probe()
	if probeErr != nil {
		return nil, errors.New(
			"uio: probe failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpSetup),
			errors.WithWrap(probeErr),
		)
	}
	if !probe.IsSupported(uring.IORING_OP_READ) || !probe.IsSupported(uring.IORING_OP_WRITE) || !probe.IsSupported(uring.IORING_OP_ACCEPT) {
		return nil, errors.New(
			"uio: kernel lacks a required opcode",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpSetup),
		)
	}

	for i := range ops {
		ops[i].kind = KindEmpty
		ops[i].userdata = nil
	}
	return &Engine{ring: ring, ops: ops}, nil
}

// Engine drives one io_uring instance with one operation table. A single
// logical thread of control must own all calls; the rings are synchronized
// against the kernel only, not against concurrent callers.
type Engine struct {
	ring *uring.Ring
	ops  []Operation
}

// Close releases every ring mapping and the ring handle. The engine must not
// be used afterwards; in-flight operations are abandoned.
func (engine *Engine) Close() error {
	return engine.ring.Close()
}

// StartRecv enqueues a receive of at most len(dst) bytes from fd. dst must
// stay valid until the matching completion is consumed by Wait. Never
// blocks: exhausted slots or a full submission ring fail immediately.
func (engine *Engine) StartRecv(fd int, dst []byte, userdata any) error {
	sqe := &uring.SubmissionQueueEntry{}
	sqe.PrepareRead(fd, bufAddr(dst), uint32(len(dst)))
	return engine.start(KindRecv, errMetaOpRecv, sqe, userdata)
}

// StartSend enqueues a send of len(src) bytes to fd. src must stay valid
// until the matching completion is consumed by Wait.
func (engine *Engine) StartSend(fd int, src []byte, userdata any) error {
	sqe := &uring.SubmissionQueueEntry{}
	sqe.PrepareWrite(fd, bufAddr(src), uint32(len(src)))
	return engine.start(KindSend, errMetaOpSend, sqe, userdata)
}

// StartAccept enqueues an accept on the listening fd. The accepted handle
// arrives in the completion's Fd field.
func (engine *Engine) StartAccept(fd int, userdata any) error {
	sqe := &uring.SubmissionQueueEntry{}
	sqe.PrepareAccept(fd)
	return engine.start(KindAccept, errMetaOpAccept, sqe, userdata)
}

func (engine *Engine) start(kind OpKind, opName string, sqe *uring.SubmissionQueueEntry, userdata any) error {
	index := -1
	for i := range engine.ops {
		if engine.ops[i].kind == KindEmpty {
			index = i
			break
		}
	}
	if index < 0 {
		return errors.From(
			ErrOperationsExhausted,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, opName),
		)
	}

	// the completion resolves back to the slot through this index
	sqe.SetData64(uint64(index))
	if !engine.ring.PushSQE(sqe) {
		return errors.From(
			ErrSubmissionQueueFull,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, opName),
		)
	}
	if _, err := engine.ring.Submit(); err != nil {
		return errors.New(
			"uio: submit failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, opName),
			errors.WithWrap(err),
		)
	}

	// commit the slot only after the kernel has been notified: no completion
	// for this operation can exist before this point
	engine.ops[index].kind = kind
	engine.ops[index].userdata = userdata
	return nil
}

// Wait blocks until a completion is available and consumes exactly one. The
// slot is released before the completion ring head is published, so the
// returned event's slot is immediately reusable by a Start call.
func (engine *Engine) Wait() (Event, error) {
	cqe, waitErr := engine.ring.WaitCQE()
	if waitErr != nil {
		return Event{}, errors.New(
			"uio: wait failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpWait),
			errors.WithWrap(waitErr),
		)
	}

	index := int(cqe.UserData)
	if index < 0 || index >= len(engine.ops) {
		engine.ring.CQAdvance(1)
		return Event{}, errors.From(
			ErrUnexpectedCompletion,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpWait),
		)
	}
	op := &engine.ops[index]

	event := Event{
		Kind:     op.kind,
		Userdata: op.userdata,
	}
	if res := cqe.Res; res < 0 {
		event.Err = errors.New(
			"uio: operation failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, event.Kind.String()),
			errors.WithWrap(syscall.Errno(-res)),
		)
	} else {
		switch op.kind {
		case KindRecv, KindSend:
			event.N = int(res)
		case KindAccept:
			event.Fd = int(res)
		}
	}

	op.kind = KindEmpty
	op.userdata = nil
	engine.ring.CQAdvance(1)
	return event, nil
}

func bufAddr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
