package http1

import "github.com/yourusername/streamcodec/pkg/streamcodec/netbuf"

// state is one of the eleven states of the HTTP/1.x decode state machine.
type state uint8

const (
	stateSkipCtrl state = iota
	stateReadInitial
	stateReadHeader
	stateReadFixedLen
	stateReadVarLen
	stateReadChunkSize
	stateReadChunkContent
	stateReadChunkDelim
	stateReadChunkFooter
	stateBadMessage
	stateUpgraded
)

// Decoder is a resumable, re-entrant HTTP/1.x message decoder. A single
// instance handles one connection's worth of traffic, one message at a
// time; it never blocks on I/O and never discards bytes it hasn't been
// told to drain.
//
// Grounded on shockwave/pkg/shockwave/http11/parser.go for header
// splitting, the smuggling guards in processSpecialHeader, and
// chunked.go's chunk-size/trailer handling, generalized from the
// teacher's blocking io.Reader-based Parse into a resumable, call-and-return
// contract: a call that runs out of input returns without blocking and
// picks up where it left off on the next call. Nothing in the teacher or
// the rest of the pack implements that resumption contract.
//
// A Decoder is not safe for concurrent use, matching the teacher's
// single-threaded Connection/Parser contract.
type Decoder struct {
	cfg     Config
	factory MessageFactory

	state state

	lineScanner   *scanner
	headerScanner *scanner

	headers  HeaderList
	trailers HeaderList

	message   Message
	isRequest bool

	contentLength int64 // -1 = absent/unknown
	remaining     int64
	chunked       bool

	resetPending bool

	hostSeen             bool
	contentLengthSeen    bool
	contentLengthValue   int64
	transferEncodingSeen bool
	chunkedRequested     bool
}

// NewDecoder constructs a Decoder. factory determines whether this
// instance parses requests or responses (MessageFactory.IsDecodingRequest).
func NewDecoder(factory MessageFactory, cfg Config) *Decoder {
	d := &Decoder{
		cfg:           cfg,
		factory:       factory,
		lineScanner:   newScanner(cfg.MaxInitialLineLength, ErrLineTooLarge),
		headerScanner: newScanner(cfg.MaxHeaderSize, ErrHeaderTooLarge),
		contentLength: -1,
	}
	return d
}

// Reset requests that the decoder discard any in-progress message and
// return to SKIP_CTRL. This is a single-writer, single-reader flag: it may
// be set from outside the decoder's own call sequence, but takes effect
// only at the next Decode/DecodeLast entry.
func (d *Decoder) Reset() {
	d.resetPending = true
}

// Upgrade forces the decoder into the UPGRADED state, handing subsequent
// bytes through as an opaque stream. Called by the surrounding pipeline
// after it has driven a protocol switch (e.g. a successful WebSocket
// handshake) to completion. The decoder has no opinion of its own about
// when an upgrade occurs; UPGRADED is purely a terminal pass-through state.
func (d *Decoder) Upgrade() {
	d.state = stateUpgraded
}

// NotifyExpectationFailed handles an HTTP 100-continue expectation that
// failed: if the decoder is
// currently reading a body, it flags a reset so no more of that body is
// delivered, without emitting a second last-content for the message
// already in flight.
func (d *Decoder) NotifyExpectationFailed() {
	switch d.state {
	case stateReadFixedLen, stateReadVarLen, stateReadChunkSize:
		d.resetPending = true
	}
}

func (d *Decoder) performReset() {
	d.state = stateSkipCtrl
	d.message = nil
	d.contentLength = -1
	d.remaining = 0
	d.chunked = false
	d.headers.Reset()
	d.trailers.Reset()
	d.lineScanner.resetSize()
	d.headerScanner.resetSize()
	d.hostSeen = false
	d.contentLengthSeen = false
	d.contentLengthValue = -1
	d.transferEncodingSeen = false
	d.chunkedRequested = false
	d.resetPending = false
}

// resetForNextMessage is the synchronous reset a completed state's handler
// calls directly, distinct from the deferred Reset() flag: it applies
// immediately, at the point a message completes.
func (d *Decoder) resetForNextMessage() {
	d.performReset()
}

// Decode consumes as much of buf as it can, emitting events to sink, and
// returns without blocking once input is insufficient to make further
// progress. It never returns a non-nil error for protocol-level problems;
// those are reported as EventInvalidMessage. A non-nil error return is
// reserved for misuse of the API (none currently defined).
func (d *Decoder) Decode(buf netbuf.Buffer, sink Sink) error {
	if d.resetPending {
		d.performReset()
	}

	for {
		switch d.state {
		case stateSkipCtrl:
			if !d.skipCtrl(buf) {
				return nil
			}
			d.state = stateReadInitial

		case stateReadInitial:
			if !d.handleReadInitial(buf, sink) {
				return nil
			}

		case stateReadHeader:
			if !d.handleReadHeader(buf, sink) {
				return nil
			}

		case stateReadFixedLen:
			if !d.handleReadFixedLen(buf, sink) {
				return nil
			}

		case stateReadVarLen:
			if !d.handleReadVarLen(buf, sink) {
				return nil
			}

		case stateReadChunkSize:
			if !d.handleReadChunkSize(buf, sink) {
				return nil
			}

		case stateReadChunkContent:
			if !d.handleReadChunkContent(buf, sink) {
				return nil
			}

		case stateReadChunkDelim:
			if !d.handleReadChunkDelim(buf) {
				return nil
			}

		case stateReadChunkFooter:
			if !d.handleReadChunkFooter(buf, sink) {
				return nil
			}

		case stateBadMessage:
			d.handleBadMessage(buf)
			return nil

		case stateUpgraded:
			d.handleUpgraded(buf, sink)
			return nil
		}
	}
}

// DecodeLast invokes Decode once, then applies end-of-connection framing
// rules for a message still in progress.
func (d *Decoder) DecodeLast(buf netbuf.Buffer, sink Sink) error {
	if err := d.Decode(buf, sink); err != nil {
		return err
	}

	switch d.state {
	case stateSkipCtrl, stateReadInitial, stateBadMessage, stateUpgraded:
		d.resetForNextMessage()

	case stateReadVarLen:
		if !d.chunked {
			d.emitEmptyLastContent(sink)
		}
		d.resetForNextMessage()

	case stateReadHeader:
		sink.Emit(Event{
			Type:    EventInvalidMessage,
			Message: d.factory.NewInvalidMessage(ErrConnectionClosedBeforeHeaders),
			Err:     ErrConnectionClosedBeforeHeaders,
		})
		d.resetForNextMessage()

	default:
		premature := d.isRequest || d.chunked || d.contentLength > 0
		if premature {
			sink.Emit(Event{
				Type:    EventInvalidMessage,
				Message: d.factory.NewInvalidMessage(ErrPrematureClosure),
				Err:     ErrPrematureClosure,
			})
		} else {
			d.emitEmptyLastContent(sink)
		}
		d.resetForNextMessage()
	}

	return nil
}

func (d *Decoder) emitEmptyLastContent(sink Sink) {
	sink.Emit(Event{Type: EventLastContent, Content: nil})
}

// fail transitions to BAD_MESSAGE and emits an invalid-message event,
// stamping the in-progress message with cause if one exists, or creating
// a fresh one otherwise.
func (d *Decoder) fail(sink Sink, cause error) {
	msg := d.message
	if msg == nil {
		msg = d.factory.NewInvalidMessage(cause)
	} else if fs, ok := msg.(FailureStampable); ok {
		fs.StampFailure(cause)
	}
	sink.Emit(Event{Type: EventInvalidMessage, Message: msg, Err: cause})
	d.state = stateBadMessage
}

// FailureStampable lets a Message record a failure cause discovered after
// it was constructed (e.g. a malformed header in a message whose initial
// line already parsed cleanly).
type FailureStampable interface {
	StampFailure(err error)
}

func (d *Decoder) skipCtrl(buf netbuf.Buffer) bool {
	pos := buf.ReaderIndex()
	end := buf.WriterIndex()
	for pos < end {
		if !isControlOrSpace(buf.At(pos)) {
			buf.SetReaderIndex(pos)
			return true
		}
		pos++
	}
	buf.SetReaderIndex(pos)
	return false
}

func (d *Decoder) handleReadInitial(buf netbuf.Buffer, sink Sink) bool {
	line, ok, err := d.lineScanner.parse(buf)
	if err != nil {
		d.lineScanner.resetSize()
		d.fail(sink, err)
		return true
	}
	if !ok {
		return false
	}
	d.lineScanner.resetSize()

	first, second, rest, ok := splitInitialLine(line)
	if !ok {
		d.state = stateSkipCtrl
		return true
	}

	msg, err := d.factory.NewMessageHead(first, second, rest, &d.headers)
	if err != nil {
		d.fail(sink, err)
		return true
	}

	d.message = msg
	d.isRequest = d.factory.IsDecodingRequest()
	d.state = stateReadHeader
	return true
}

func (d *Decoder) handleReadHeader(buf netbuf.Buffer, sink Sink) bool {
	done, err := d.readHeaderLines(buf, &d.headers, false)
	if err != nil {
		d.fail(sink, err)
		return true
	}
	if !done {
		return false
	}
	return d.finishHeaders(sink)
}

// readHeaderLines parses header lines into target until an empty line
// terminates the block. filterTrailer discards the three forbidden
// trailer names instead of storing them, and skips smuggling-guard
// bookkeeping (only meaningful for the real header block).
func (d *Decoder) readHeaderLines(buf netbuf.Buffer, target *HeaderList, filterTrailer bool) (done bool, err error) {
	for {
		line, ok, perr := d.headerScanner.parse(buf)
		if perr != nil {
			return false, perr
		}
		if !ok {
			return false, nil
		}
		if len(line) == 0 {
			return true, nil
		}

		if isHeaderContinuation(line[0]) {
			target.AppendToLast(" " + string(trimSpace(line)))
			continue
		}

		name, value, ok := splitHeaderLine(line)
		if !ok {
			return false, ErrMalformedHeader
		}

		if filterTrailer {
			if isForbiddenTrailer(name) {
				continue
			}
			target.Add(name, value)
			continue
		}

		if err := d.trackSpecialHeader(name, value); err != nil {
			return false, err
		}
		target.Add(name, value)
	}
}

func (d *Decoder) trackSpecialHeader(name, value string) error {
	switch {
	case equalFold(name, "content-length"):
		n, err := parseContentLengthValue(value)
		if err != nil {
			return ErrInvalidContentLength
		}
		if d.contentLengthSeen && d.contentLengthValue != n {
			return ErrDuplicateContentLength
		}
		d.contentLengthSeen = true
		d.contentLengthValue = n

	case equalFold(name, "transfer-encoding"):
		d.transferEncodingSeen = true
		if containsToken(value, "chunked") {
			d.chunkedRequested = true
		}

	case d.isRequest && equalFold(name, "host"):
		if d.hostSeen {
			return ErrDuplicateHost
		}
		d.hostSeen = true
	}
	return nil
}

func (d *Decoder) finishHeaders(sink Sink) bool {
	if d.transferEncodingSeen && d.contentLengthSeen {
		d.fail(sink, ErrContentLengthWithTransferEncoding)
		return true
	}

	if d.message.IsContentAlwaysEmpty() {
		d.chunkedRequested = false
		sink.Emit(Event{Type: EventMessageHead, Message: d.message})
		d.emitEmptyLastContent(sink)
		d.resetForNextMessage()
		return true
	}

	if d.transferEncodingSeen && d.chunkedRequested {
		if !d.cfg.ChunkedSupported {
			d.fail(sink, ErrChunkedNotSupported)
			return true
		}
		sink.Emit(Event{Type: EventMessageHead, Message: d.message})
		d.chunked = true
		d.state = stateReadChunkSize
		return true
	}

	length := int64(-1)
	if d.contentLengthSeen {
		length = d.contentLengthValue
	}

	if length == 0 || (length == -1 && d.isRequest) {
		sink.Emit(Event{Type: EventMessageHead, Message: d.message})
		d.emitEmptyLastContent(sink)
		d.resetForNextMessage()
		return true
	}

	sink.Emit(Event{Type: EventMessageHead, Message: d.message})
	d.contentLength = length
	if length >= 0 {
		d.remaining = length
		d.state = stateReadFixedLen
	} else {
		d.state = stateReadVarLen
	}
	return true
}

// readChunk takes up to maxTake bytes, further bounded by d.remaining,
// from buf's readable region, advancing the read cursor and decrementing
// d.remaining. ok is false if no bytes were available at all.
func (d *Decoder) readChunk(buf netbuf.Buffer, maxTake int) (data []byte, ok bool) {
	avail := buf.ReadableBytes()
	if avail <= 0 {
		return nil, false
	}
	take := avail
	if take > maxTake {
		take = maxTake
	}
	if int64(take) > d.remaining {
		take = int(d.remaining)
	}
	start := buf.ReaderIndex()
	end := start + take
	data = buf.Slice(start, end)
	buf.SetReaderIndex(end)
	d.remaining -= int64(take)
	return data, true
}

func (d *Decoder) handleReadFixedLen(buf netbuf.Buffer, sink Sink) bool {
	data, ok := d.readChunk(buf, d.cfg.MaxChunkSize)
	if !ok {
		return false
	}
	if d.remaining <= 0 {
		sink.Emit(Event{Type: EventLastContent, Content: data})
		d.resetForNextMessage()
	} else {
		sink.Emit(Event{Type: EventContent, Content: data})
	}
	return true
}

func (d *Decoder) handleReadVarLen(buf netbuf.Buffer, sink Sink) bool {
	avail := buf.ReadableBytes()
	if avail <= 0 {
		return false
	}
	take := avail
	if take > d.cfg.MaxChunkSize {
		take = d.cfg.MaxChunkSize
	}
	start := buf.ReaderIndex()
	end := start + take
	data := buf.Slice(start, end)
	buf.SetReaderIndex(end)
	sink.Emit(Event{Type: EventContent, Content: data})
	return true
}

func (d *Decoder) handleReadChunkSize(buf netbuf.Buffer, sink Sink) bool {
	line, ok, err := d.lineScanner.parse(buf)
	if err != nil {
		d.lineScanner.resetSize()
		d.fail(sink, err)
		return true
	}
	if !ok {
		return false
	}
	d.lineScanner.resetSize()

	size, err := parseChunkSizeLine(line)
	if err != nil {
		d.fail(sink, ErrInvalidChunkSize)
		return true
	}
	if size == 0 {
		d.state = stateReadChunkFooter
		return true
	}
	d.remaining = size
	d.state = stateReadChunkContent
	return true
}

func (d *Decoder) handleReadChunkContent(buf netbuf.Buffer, sink Sink) bool {
	data, ok := d.readChunk(buf, d.cfg.MaxChunkSize)
	if !ok {
		return false
	}
	sink.Emit(Event{Type: EventContent, Content: data})
	if d.remaining <= 0 {
		d.state = stateReadChunkDelim
	}
	return true
}

func (d *Decoder) handleReadChunkDelim(buf netbuf.Buffer) bool {
	pos := buf.ReaderIndex()
	end := buf.WriterIndex()
	for pos < end {
		b := buf.At(pos)
		pos++
		if b == lfByte {
			buf.SetReaderIndex(pos)
			d.state = stateReadChunkSize
			return true
		}
	}
	buf.SetReaderIndex(pos)
	return false
}

func (d *Decoder) handleReadChunkFooter(buf netbuf.Buffer, sink Sink) bool {
	done, err := d.readHeaderLines(buf, &d.trailers, true)
	if err != nil {
		d.fail(sink, err)
		return true
	}
	if !done {
		return false
	}

	// The event gets its own copy: d.trailers is cleared by the reset below.
	var trailers *HeaderList
	if d.trailers.Len() > 0 {
		t := d.trailers
		t.overflow = append([]headerEntry(nil), d.trailers.overflow...)
		trailers = &t
	}
	sink.Emit(Event{Type: EventLastContent, Content: nil, Trailers: trailers})
	d.resetForNextMessage()
	return true
}

func (d *Decoder) handleBadMessage(buf netbuf.Buffer) {
	buf.SetReaderIndex(buf.WriterIndex())
}

func (d *Decoder) handleUpgraded(buf netbuf.Buffer, sink Sink) {
	avail := buf.ReadableBytes()
	if avail <= 0 {
		return
	}
	start := buf.ReaderIndex()
	end := buf.WriterIndex()
	data := buf.Slice(start, end)
	buf.SetReaderIndex(end)
	sink.Emit(Event{Type: EventContent, Content: data})
}
