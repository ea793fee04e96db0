package uring

type Options struct {
	Entries uint32
	Flags   uint32
}

type Option func(*Options)

// WithEntries
// setup ring entries, rounded up to a power of two. The kernel has the
// final say on the negotiated geometry.
func WithEntries(entries uint32) Option {
	return func(opts *Options) {
		opts.Entries = entries
	}
}

// WithFlags
// setup io_uring_setup flags.
func WithFlags(flags uint32) Option {
	return func(opts *Options) {
		opts.Flags |= flags
	}
}
