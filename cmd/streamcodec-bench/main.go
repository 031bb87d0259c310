// Command streamcodec-bench compares pkg/streamcodec/http1's decoder
// against valyala/fasthttp's request parser on the same fixture traffic,
// the same three-way comparison shape
// shockwave/pkg/shockwave/http11/threeway_comparison_bench_test.go runs
// against fasthttp and net/http, run here as a standalone binary via
// testing.Benchmark instead of `go test -bench` so it can be shipped and
// run without the source tree.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/yourusername/streamcodec/pkg/streamcodec/http1"
	"github.com/yourusername/streamcodec/pkg/streamcodec/netbuf"
)

var fixtures = map[string]string{
	"simple-get": "GET /api/users HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"User-Agent: Go-http-client/1.1\r\n" +
		"\r\n",
	"post-with-body": "POST /api/users HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Type: application/json\r\n" +
		"Content-Length: 25\r\n" +
		"\r\n" +
		`{"name":"Alice","age":30}`,
	"many-headers": "GET /api/data HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"User-Agent: Mozilla/5.0\r\n" +
		"Accept: application/json\r\n" +
		"Accept-Encoding: gzip, deflate\r\n" +
		"Accept-Language: en-US,en;q=0.9\r\n" +
		"Cache-Control: no-cache\r\n" +
		"Connection: keep-alive\r\n" +
		"Cookie: session=abc123\r\n" +
		"Referer: https://example.com\r\n" +
		"Authorization: Bearer token123\r\n" +
		"\r\n",
}

type requestFactory struct{}

func (requestFactory) IsDecodingRequest() bool { return true }

func (requestFactory) NewMessageHead(first, second, third string, headers *http1.HeaderList) (http1.Message, error) {
	return benchMessage{}, nil
}

func (requestFactory) NewInvalidMessage(cause error) http1.Message {
	return benchMessage{}
}

type benchMessage struct{}

func (benchMessage) IsContentAlwaysEmpty() bool { return false }

type discardSink struct{}

func (discardSink) Emit(http1.Event) {}

func benchmarkStreamcodec(raw string) func(b *testing.B) {
	return func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(raw)))
		data := []byte(raw)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			d := http1.NewDecoder(requestFactory{}, http1.DefaultConfig())
			buf := netbuf.NewPooledBuffer()
			buf.Write(data)
			if err := d.Decode(buf, discardSink{}); err != nil {
				b.Fatal(err)
			}
			buf.Release()
		}
	}
}

func benchmarkFasthttp(raw string) func(b *testing.B) {
	return func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(raw)))

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var req fasthttp.Request
			if err := req.Read(bufio.NewReader(strings.NewReader(raw))); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func main() {
	only := flag.String("fixture", "", "run a single named fixture (default: all)")
	flag.Parse()

	log.SetFlags(0)

	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		if *only != "" && name != *only {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var out bytes.Buffer
	fmt.Fprintf(&out, "%-18s %-14s %12s %10s %8s\n", "fixture", "impl", "ns/op", "B/op", "allocs/op")
	for _, name := range names {
		raw := fixtures[name]

		scResult := testing.Benchmark(benchmarkStreamcodec(raw))
		fhResult := testing.Benchmark(benchmarkFasthttp(raw))

		fmt.Fprintf(&out, "%-18s %-14s %12.1f %10d %8d\n", name, "streamcodec",
			float64(scResult.T.Nanoseconds())/float64(scResult.N), scResult.AllocedBytesPerOp(), scResult.AllocsPerOp())
		fmt.Fprintf(&out, "%-18s %-14s %12.1f %10d %8d\n", name, "fasthttp",
			float64(fhResult.T.Nanoseconds())/float64(fhResult.N), fhResult.AllocedBytesPerOp(), fhResult.AllocsPerOp())
	}

	fmt.Print(out.String())
}
