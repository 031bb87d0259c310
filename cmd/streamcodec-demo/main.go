// Command streamcodec-demo runs pkg/streamcodec/hpack and
// pkg/streamcodec/http1 outside of a test harness; the http1 part runs
// over a real net.Conn, backed by netbuf.PooledBuffer
// (bytebufferpool-backed).
//
// It has two parts: an HPACK header-block encoding demo (printed, since
// HPACK decoding is out of scope here and there is no peer in this module
// that decodes it back), and a loopback TCP client/server exercising the
// HTTP/1.x decoder's resumable contract across a real, possibly-split,
// socket read.
package main

import (
	"encoding/hex"
	"flag"
	"log"
	"net"
	"time"

	"github.com/yourusername/streamcodec/pkg/streamcodec/hpack"
	"github.com/yourusername/streamcodec/pkg/streamcodec/http1"
	"github.com/yourusername/streamcodec/pkg/streamcodec/netbuf"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:0", "loopback address for the HTTP/1.x demo server")
	flag.Parse()

	log.SetFlags(0)

	runHPACKDemo()
	runHTTP1Demo(*addr)
}

func runHPACKDemo() {
	enc := hpack.NewEncoder()
	out := make([]byte, 0, 128)

	headers := []hpack.HeaderField{
		{Name: ":method", Value: "GET"},
		{Name: ":path", Value: "/widgets"},
		{Name: "authorization", Value: "Bearer s3cr3t-token"},
		{Name: "user-agent", Value: "streamcodec-demo/1.0"},
	}

	sensitive := func(name, value string) bool {
		return name == "authorization"
	}

	out, err := enc.EncodeHeaders(1, out, headers, sensitive)
	if err != nil {
		log.Fatalf("hpack: encode failed: %v", err)
	}

	log.Printf("hpack: encoded %d headers into %d bytes", len(headers), len(out))
	log.Printf("hpack: wire bytes: %s", hex.EncodeToString(out))
}

func runHTTP1Demo(addr string) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("http1: listen: %v", err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go serveOne(ln, done)

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		log.Fatalf("http1: dial: %v", err)
	}

	request := "POST /upload HTTP/1.1\r\n" +
		"Host: demo.internal\r\n" +
		"Content-Length: 11\r\n" +
		"\r\n" +
		"hello world"

	// Write in two halves with a pause between them, so the server side
	// genuinely observes the decoder resuming across separate Read calls
	// instead of getting the whole message in one shot.
	half := len(request) / 2
	if _, err := conn.Write([]byte(request[:half])); err != nil {
		log.Fatalf("http1: write first half: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := conn.Write([]byte(request[half:])); err != nil {
		log.Fatalf("http1: write second half: %v", err)
	}
	conn.Close()

	<-done
}

type loggingSink struct{}

func (loggingSink) Emit(e http1.Event) {
	switch e.Type {
	case http1.EventMessageHead:
		log.Printf("http1: message head: %+v", e.Message)
	case http1.EventContent:
		log.Printf("http1: content chunk: %q", e.Content)
	case http1.EventLastContent:
		log.Printf("http1: last content: %q", e.Content)
	case http1.EventInvalidMessage:
		log.Printf("http1: invalid message: %v", e.Err)
	}
}

type demoRequest struct {
	method, path, proto string
}

type demoFactory struct{}

func (demoFactory) IsDecodingRequest() bool { return true }

func (demoFactory) NewMessageHead(first, second, third string, headers *http1.HeaderList) (http1.Message, error) {
	return &demoRequest{method: first, path: second, proto: third}, nil
}

func (demoFactory) NewInvalidMessage(cause error) http1.Message {
	return &demoRequest{method: "INVALID", path: cause.Error()}
}

func (r *demoRequest) IsContentAlwaysEmpty() bool { return false }

func serveOne(ln net.Listener, done chan<- struct{}) {
	defer close(done)

	conn, err := ln.Accept()
	if err != nil {
		log.Printf("http1: accept: %v", err)
		return
	}
	defer conn.Close()

	decoder := http1.NewDecoder(demoFactory{}, http1.DefaultConfig())
	buf := netbuf.NewPooledBuffer()
	defer buf.Release()

	sink := loggingSink{}
	readBuf := make([]byte, 512)

	for {
		n, err := conn.Read(readBuf)
		if n > 0 {
			buf.Write(readBuf[:n])
			if decodeErr := decoder.Decode(buf, sink); decodeErr != nil {
				log.Printf("http1: decode: %v", decodeErr)
				return
			}
		}
		if err != nil {
			return
		}
	}
}
