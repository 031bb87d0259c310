// Package netbuf provides the byte-buffer abstraction the http1 decoder
// treats as an external collaborator (the hpack encoder appends to a plain
// []byte instead): sequential reads through a
// mutable cursor, random access between cursors, slice retention, and
// append-writes.
//
// Grounded on shockwave/pkg/shockwave/buffer_pool.go's size-classed
// sync.Pool buffer pooling idiom, adapted to wrap the ecosystem's own
// pooled-buffer type (valyala/bytebufferpool, already a transitive
// dependency of the teacher's fasthttp stack) instead of a hand-rolled
// sync.Pool, since bytebufferpool already solves exactly this problem.
package netbuf

import "github.com/valyala/bytebufferpool"

// Buffer is the read/write byte-buffer abstraction the http1 decoder is
// written against. ReaderIndex is the mutable read
// cursor; bytes below it have been consumed, bytes at or above it up to
// WriterIndex are readable.
type Buffer interface {
	// ReaderIndex returns the current read cursor position.
	ReaderIndex() int

	// SetReaderIndex moves the read cursor to an absolute position.
	// Callers must only move it within [0, WriterIndex()].
	SetReaderIndex(pos int)

	// WriterIndex returns the number of bytes written so far (the end of
	// valid data).
	WriterIndex() int

	// ReadableBytes returns WriterIndex() - ReaderIndex().
	ReadableBytes() int

	// At returns the byte at an absolute index, for random access between
	// cursors (e.g. scanning ahead for a delimiter without consuming).
	At(index int) byte

	// Slice returns the retained byte range [start, end) without copying.
	// The returned slice aliases the buffer's backing array and is only
	// valid until the next Write.
	Slice(start, end int) []byte

	// Write appends p to the buffer, growing the backing array as needed.
	Write(p []byte)

	// Reset empties the buffer and resets both cursors to zero.
	Reset()
}

// PooledBuffer is a Buffer backed by a pooled bytebufferpool.ByteBuffer.
type PooledBuffer struct {
	bb          *bytebufferpool.ByteBuffer
	readerIndex int
}

// NewPooledBuffer acquires a ByteBuffer from the shared pool.
func NewPooledBuffer() *PooledBuffer {
	return &PooledBuffer{bb: bytebufferpool.Get()}
}

// Release returns the backing ByteBuffer to the pool. The PooledBuffer
// must not be used afterward.
func (p *PooledBuffer) Release() {
	bytebufferpool.Put(p.bb)
	p.bb = nil
}

func (p *PooledBuffer) ReaderIndex() int { return p.readerIndex }

func (p *PooledBuffer) SetReaderIndex(pos int) { p.readerIndex = pos }

func (p *PooledBuffer) WriterIndex() int { return len(p.bb.B) }

func (p *PooledBuffer) ReadableBytes() int { return len(p.bb.B) - p.readerIndex }

func (p *PooledBuffer) At(index int) byte { return p.bb.B[index] }

func (p *PooledBuffer) Slice(start, end int) []byte { return p.bb.B[start:end] }

func (p *PooledBuffer) Write(data []byte) { p.bb.Write(data) }

func (p *PooledBuffer) Reset() {
	p.bb.Reset()
	p.readerIndex = 0
}
