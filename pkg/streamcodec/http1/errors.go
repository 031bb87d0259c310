package http1

import "errors"

// Errors returned or surfaced as invalid-message/invalid-content causes.
// Grouped and named in the style of shockwave/pkg/shockwave/http11/errors.go:
// package-level sentinels, no wrapping library.
var (
	// ErrLineTooLarge indicates the initial line or a chunk-size line
	// exceeded maxInitialLineLength.
	ErrLineTooLarge = errors.New("http1: initial line too large")

	// ErrHeaderTooLarge indicates the accumulated header block exceeded
	// maxHeaderSize.
	ErrHeaderTooLarge = errors.New("http1: header block too large")

	// ErrMalformedInitialLine indicates the initial line did not split into
	// at least three whitespace-delimited fields. The Decoder does not
	// surface it: such a line is dropped and the decoder goes back to
	// skipping leading control bytes.
	ErrMalformedInitialLine = errors.New("http1: malformed initial line")

	// ErrMalformedHeader indicates a header line had no colon separator,
	// an empty name, or whitespace before the colon.
	ErrMalformedHeader = errors.New("http1: malformed header line")

	// ErrInvalidContentLength indicates a Content-Length value that failed
	// to parse as a non-negative integer.
	ErrInvalidContentLength = errors.New("http1: invalid Content-Length")

	// ErrContentLengthWithTransferEncoding indicates a message declared both
	// Content-Length and Transfer-Encoding. RFC 7230 §3.3.3 requires this be
	// rejected to prevent request smuggling.
	ErrContentLengthWithTransferEncoding = errors.New("http1: message has both Content-Length and Transfer-Encoding")

	// ErrDuplicateContentLength indicates more than one Content-Length
	// header with differing values. RFC 7230 §3.3.3.
	ErrDuplicateContentLength = errors.New("http1: duplicate Content-Length headers with different values")

	// ErrDuplicateHost indicates more than one Host header in a request.
	ErrDuplicateHost = errors.New("http1: duplicate Host header")

	// ErrChunkedNotSupported indicates the peer sent a chunked body while
	// chunkedSupported is false in the decoder's configuration.
	ErrChunkedNotSupported = errors.New("http1: chunked transfer encoding not supported")

	// ErrInvalidChunkSize indicates a chunk-size line failed to parse as a
	// hexadecimal integer.
	ErrInvalidChunkSize = errors.New("http1: invalid chunk size")

	// ErrConnectionClosedBeforeHeaders indicates decodeLast observed the
	// connection end while still inside READ_HEADER.
	ErrConnectionClosedBeforeHeaders = errors.New("http1: connection closed before headers")

	// ErrPrematureClosure indicates decodeLast observed the connection end
	// mid-body, with framing that required more bytes.
	ErrPrematureClosure = errors.New("http1: connection closed before message body was complete")

	// ErrInvalidConfig indicates a non-positive size limit in Config.
	ErrInvalidConfig = errors.New("http1: invalid configuration value")
)
