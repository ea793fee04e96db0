// Package uio is a minimal asynchronous I/O engine over the Linux io_uring
// rings. A caller provides a fixed table of Operation slots, starts receive,
// send and accept requests against open handles, and drains results one at a
// time through Wait. Everything else, opening handles, buffer lifetime and
// scheduling, belongs to the caller.
package uio

type OpKind uint8

const (
	KindEmpty OpKind = iota
	KindRecv
	KindSend
	KindAccept
)

func (kind OpKind) String() string {
	switch kind {
	case KindRecv:
		return "recv"
	case KindSend:
		return "send"
	case KindAccept:
		return "accept"
	default:
		return "empty"
	}
}

// Operation is one slot of the engine's operation table. The caller owns the
// table and must keep it alive, untouched, for the engine's whole lifetime;
// the engine hands out nothing but completions that reference slots by index.
type Operation struct {
	kind     OpKind
	userdata any
}

func (op *Operation) Kind() OpKind {
	return op.kind
}

// Event is the result of one completed operation. N carries the transferred
// byte count for recv and send, Fd the new handle for accept; both are
// meaningful only when Err is nil. Userdata is returned verbatim.
type Event struct {
	Kind     OpKind
	Userdata any
	N        int
	Fd       int
	Err      error
}
