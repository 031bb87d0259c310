package hpack

import "errors"

// Errors returned by the encoder's configuration setters and header-list
// size check.
var (
	// ErrConfiguration indicates an out-of-range table size or header list
	// size passed to a setter.
	ErrConfiguration = errors.New("hpack: invalid configuration value")

	// ErrHeaderListSizeExceeded indicates the caller's header list exceeds
	// MaxHeaderListSize. No output is produced and the dynamic table is untouched.
	ErrHeaderListSizeExceeded = errors.New("hpack: header list size exceeds configured maximum")
)

// ProtocolError is a connection-level HPACK error parameterized by the stream
// that triggered it. It is returned instead of a bare sentinel so callers can
// report which HTTP/2 stream caused the encoder to refuse the header block.
type ProtocolError struct {
	StreamID uint32
	Err      error
}

func (e *ProtocolError) Error() string {
	return e.Err.Error()
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
