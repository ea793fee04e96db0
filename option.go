package uio

type Options struct {
	Entries uint32
}

type Option func(*Options)

// WithEntries
// setup the submission ring capacity requested from the kernel. Rounded up
// to a power of two; the kernel reports the negotiated geometry back. Zero
// means the default.
func WithEntries(entries uint32) Option {
	return func(opts *Options) {
		opts.Entries = entries
	}
}
