// Package http1 implements a resumable, re-entrant HTTP/1.x message decoder:
// a byte-stream-in, event-out state machine suitable for embedding in an
// asynchronous I/O pipeline. It never blocks on I/O itself.
package http1

// Default configuration knobs, named the way
// shockwave/pkg/shockwave/http11/constants.go names its size limits.
const (
	// DefaultMaxInitialLineLength bounds the request-line or status-line.
	DefaultMaxInitialLineLength = 4096

	// DefaultMaxHeaderSize bounds the total size of a header block,
	// accumulated across every header line of one message.
	DefaultMaxHeaderSize = 8192

	// DefaultMaxChunkSize bounds how many content bytes are emitted in a
	// single content-chunk event.
	DefaultMaxChunkSize = 8192

	// DefaultInitialBufferSize sizes the scanners' scratch buffers.
	DefaultInitialBufferSize = 128
)

// Header names that are forbidden in chunked trailers and silently
// discarded there, per RFC 7230 §4.1.2.
var forbiddenTrailerNames = [3]string{"content-length", "transfer-encoding", "trailer"}

func isForbiddenTrailer(name string) bool {
	for _, n := range forbiddenTrailerNames {
		if equalFold(name, n) {
			return true
		}
	}
	return false
}

const (
	crByte = '\r'
	lfByte = '\n'
	spByte = ' '
	htByte = '\t'
	colon  = ':'
	semi   = ';'
)

func isControlOrSpace(b byte) bool {
	return b <= spByte
}

func isHeaderContinuation(b byte) bool {
	return b == spByte || b == htByte
}

// equalFold compares a and b ASCII case-insensitively without allocating.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
