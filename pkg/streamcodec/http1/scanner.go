package http1

import "github.com/yourusername/streamcodec/pkg/streamcodec/netbuf"

// scanner wraps a reusable scratch buffer and a byte cap, and extracts one
// CR/LF-terminated line at a time from an input Buffer without ever
// copying more than once.
//
// Grounded on the teacher's header-parsing loop in
// shockwave/pkg/shockwave/http11/parser.go's readUntilHeadersEnd, adapted
// from a blocking io.Reader loop into a resumable cursor-based scan: a call
// can return unchanged and be retried once more input arrives, something
// the teacher's blocking Parse has no equivalent of.
type scanner struct {
	scratch  []byte
	size     int
	maxSize  int
	tooLarge error
}

func newScanner(maxSize int, tooLarge error) *scanner {
	return &scanner{
		scratch:  make([]byte, 0, DefaultInitialBufferSize),
		maxSize:  maxSize,
		tooLarge: tooLarge,
	}
}

// resetSize clears the running size counter and scratch contents without
// changing maxSize. The line scanner calls this after every line it
// returns or rejects; the header scanner calls it only between messages,
// since its counter must accumulate across the whole header block.
func (s *scanner) resetSize() {
	s.scratch = s.scratch[:0]
	s.size = 0
}

// parse consumes bytes from buf's read cursor until an LF is found. CR
// bytes are discarded; every other byte is appended to the scratch buffer,
// which holds only the current line. On success it advances buf's read
// cursor past the LF and returns (line, true, nil); line aliases the
// scratch buffer and is valid until the next call. If the cap is exceeded,
// it returns (nil, false, tooLarge) with the read cursor left just past the
// offending byte. If the input is exhausted before an LF appears, it
// returns (nil, false, nil) with the read cursor unchanged and the size
// counter restored to its value before the call, so the next call rescans
// the same bytes once more input has arrived.
func (s *scanner) parse(buf netbuf.Buffer) ([]byte, bool, error) {
	pos := buf.ReaderIndex()
	end := buf.WriterIndex()
	oldSize := s.size
	s.scratch = s.scratch[:0]

	for pos < end {
		b := buf.At(pos)
		pos++

		if b == lfByte {
			buf.SetReaderIndex(pos)
			return s.scratch, true, nil
		}
		if b == crByte {
			continue
		}

		s.scratch = append(s.scratch, b)
		s.size++
		if s.size > s.maxSize {
			buf.SetReaderIndex(pos)
			return nil, false, s.tooLarge
		}
	}

	// Input exhausted without an LF: leave the cursor where it started and
	// restore the size counter for the next call.
	s.size = oldSize
	return nil, false, nil
}
