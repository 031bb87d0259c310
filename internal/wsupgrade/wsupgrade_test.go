package wsupgrade

import (
	"errors"
	"net"
	"testing"
)

type fakeHeaders struct {
	entries [][2]string
}

func (f fakeHeaders) VisitAll(visit func(name, value string)) {
	for _, e := range f.entries {
		visit(e[0], e[1])
	}
}

func TestRequestFromHeadersCopiesEveryHeader(t *testing.T) {
	headers := fakeHeaders{entries: [][2]string{
		{"Upgrade", "websocket"},
		{"Connection", "Upgrade"},
		{"Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ=="},
		{"Sec-WebSocket-Version", "13"},
	}}

	req, err := RequestFromHeaders("GET", "/chat", headers)
	if err != nil {
		t.Fatalf("RequestFromHeaders: %v", err)
	}

	for _, e := range headers.entries {
		if got := req.Header.Get(e[0]); got != e[1] {
			t.Fatalf("header %q: got %q, want %q", e[0], got, e[1])
		}
	}
}

func TestHandoffRejectsNonUpgradeRequest(t *testing.T) {
	headers := fakeHeaders{entries: [][2]string{
		{"Accept", "text/html"},
	}}
	req, err := RequestFromHeaders("GET", "/", headers)
	if err != nil {
		t.Fatalf("RequestFromHeaders: %v", err)
	}

	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	_, err = Handoff(serverConn, req, nil, Options{})
	if !errors.Is(err, ErrNotUpgradeRequest) {
		t.Fatalf("expected ErrNotUpgradeRequest, got %v", err)
	}
}
