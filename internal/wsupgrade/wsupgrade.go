// Package wsupgrade hands a connection off from the http1 decoder's
// UPGRADED state to a real WebSocket implementation. The decoder itself
// never speaks WebSocket: once it emits the message head of a WebSocket
// upgrade request and the caller calls Decoder.Upgrade, this package is the
// new codec that takes over the connection and writes the 101 response.
//
// Grounded on shockwave/pkg/shockwave/websocket/upgrade.go's Upgrader,
// whose hijack-then-handshake shape is reused here. Handshake validation
// and framing are delegated to gorilla/websocket rather than reimplemented;
// the teacher's own websocket package is the hand-rolled version of
// exactly what gorilla/websocket already does well.
package wsupgrade

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
)

// ErrNotUpgradeRequest indicates the parsed request did not carry the
// headers RFC 6455 §4.2.1 requires for a WebSocket handshake.
var ErrNotUpgradeRequest = errors.New("wsupgrade: request is not a WebSocket upgrade")

// Options configures the handoff. Zero value uses gorilla/websocket's
// own defaults for buffer sizing.
type Options struct {
	ReadBufferSize  int
	WriteBufferSize int
	Subprotocols    []string
	CheckOrigin     func(r *http.Request) bool
}

// hijackableConn adapts a net.Conn the decoder's caller already owns into
// the http.ResponseWriter + http.Hijacker pair gorilla/websocket.Upgrader
// expects, so the handoff never opens a second connection or re-reads
// bytes the decoder already consumed.
type hijackableConn struct {
	header http.Header
	conn   net.Conn
	brw    *bufio.ReadWriter
}

func (h *hijackableConn) Header() http.Header         { return h.header }
func (h *hijackableConn) Write([]byte) (int, error)   { return 0, errors.New("wsupgrade: write before hijack") }
func (h *hijackableConn) WriteHeader(statusCode int)  {}

func (h *hijackableConn) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return h.conn, h.brw, nil
}

// Handoff validates req as a WebSocket handshake and, on success, writes
// the 101 response over conn and returns a live gorilla/websocket.Conn
// ready for framed I/O. req should be built from the same headers the
// http1 decoder parsed for the EventMessageHead that triggered this
// upgrade (see RequestFromHeaders).
func Handoff(conn net.Conn, req *http.Request, responseHeader http.Header, opts Options) (*websocket.Conn, error) {
	if !websocket.IsWebSocketUpgrade(req) {
		return nil, ErrNotUpgradeRequest
	}

	upgrader := &websocket.Upgrader{
		ReadBufferSize:  opts.ReadBufferSize,
		WriteBufferSize: opts.WriteBufferSize,
		Subprotocols:    opts.Subprotocols,
		CheckOrigin:     opts.CheckOrigin,
	}

	br := bufio.NewReader(conn)
	bw := bufio.NewWriter(conn)
	hj := &hijackableConn{
		header: make(http.Header),
		conn:   conn,
		brw:    bufio.NewReadWriter(br, bw),
	}

	return upgrader.Upgrade(hj, req, responseHeader)
}

// RequestFromHeaders builds the *http.Request gorilla/websocket's
// handshake validation expects, from the three fields and header list the
// http1 decoder already parsed. It does not re-parse or re-read from the
// wire: every value here came from the decoder's own EventMessageHead.
func RequestFromHeaders(method, requestURI string, headers VisitableHeaders) (*http.Request, error) {
	req, err := http.NewRequest(method, requestURI, nil)
	if err != nil {
		return nil, err
	}
	req.Header = make(http.Header)
	headers.VisitAll(func(name, value string) {
		req.Header.Add(name, value)
	})
	return req, nil
}

// VisitableHeaders is the minimal surface RequestFromHeaders needs from a
// parsed header list; http1.HeaderList satisfies it without this package
// importing http1 directly, keeping the dependency edge one-directional
// (http1 knows nothing about WebSocket).
type VisitableHeaders interface {
	VisitAll(func(name, value string))
}
