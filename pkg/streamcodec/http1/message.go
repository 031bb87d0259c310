package http1

// Message is the concrete request/response object a MessageFactory
// constructs from a parsed initial line. The decoder only needs to know
// whether, once built, the message's body is necessarily empty. It has no
// other opinion about the message's shape.
//
// The decoder depends on a capability, not a concrete type, modelled here
// as an interface parameter rather than inheritance.
type Message interface {
	// IsContentAlwaysEmpty reports whether this message can never carry a
	// body, regardless of any Content-Length or Transfer-Encoding header.
	// See ContentAlwaysEmpty for the exact rule.
	IsContentAlwaysEmpty() bool
}

// MessageFactory is the capability the decoder depends on to construct
// concrete messages, without knowing their concrete type.
type MessageFactory interface {
	// IsDecodingRequest reports whether this decoder instance parses
	// requests (true) or responses (false). Fixed for the factory's
	// lifetime.
	IsDecodingRequest() bool

	// NewMessageHead builds a message from the three whitespace-delimited
	// fields of the initial line (method/path/protocol for a request,
	// protocol/status/reason for a response) and the decoder's header
	// list. It is called before any header line has been read, so headers
	// is still empty at that point and is filled in during READ_HEADER.
	NewMessageHead(first, second, third string, headers *HeaderList) (Message, error)

	// NewInvalidMessage builds a placeholder message stamped with a
	// failure cause, used when parsing fails before a message head could
	// be constructed, and by DecodeLast when the connection closes before
	// the message is complete.
	NewInvalidMessage(cause error) Message
}

// EventType identifies the kind of Event the decoder emits.
type EventType int

const (
	// EventMessageHead carries a newly constructed Message.
	EventMessageHead EventType = iota
	// EventContent carries a non-final content chunk.
	EventContent
	// EventLastContent carries the final content chunk (possibly empty)
	// and any trailers.
	EventLastContent
	// EventInvalidMessage carries a Message stamped with a failure cause.
	EventInvalidMessage
)

// Event is one unit of decoder output.
type Event struct {
	Type     EventType
	Message  Message  // set on EventMessageHead and EventInvalidMessage
	Content  []byte   // set on EventContent and EventLastContent; retained, not copied
	Trailers *HeaderList // set on EventLastContent when trailers were present
	Err      error    // set on EventInvalidMessage
}

// Sink receives decoder events in emission order. Grounded on the
// message-factory pattern: an interface parameter, so a caller can collect
// events into a slice, drive a state machine, or stream them onward
// without the decoder knowing which.
type Sink interface {
	Emit(Event)
}

// SliceSink is a Sink that accumulates events into a slice, useful for
// tests and for simple synchronous callers.
type SliceSink struct {
	Events []Event
}

func (s *SliceSink) Emit(e Event) {
	s.Events = append(s.Events, e)
}
