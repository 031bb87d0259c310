package netbuf

import "testing"

func TestPooledBufferWriteAndRead(t *testing.T) {
	buf := NewPooledBuffer()
	defer buf.Release()

	buf.Write([]byte("hello"))
	if buf.WriterIndex() != 5 {
		t.Fatalf("WriterIndex() = %d, want 5", buf.WriterIndex())
	}
	if buf.ReadableBytes() != 5 {
		t.Fatalf("ReadableBytes() = %d, want 5", buf.ReadableBytes())
	}

	buf.SetReaderIndex(2)
	if buf.ReadableBytes() != 3 {
		t.Fatalf("ReadableBytes() after advance = %d, want 3", buf.ReadableBytes())
	}
	if buf.At(2) != 'l' {
		t.Fatalf("At(2) = %q, want 'l'", buf.At(2))
	}
}

func TestPooledBufferSliceRetention(t *testing.T) {
	buf := NewPooledBuffer()
	defer buf.Release()

	buf.Write([]byte("abcdef"))
	s := buf.Slice(1, 4)
	if string(s) != "bcd" {
		t.Fatalf("Slice(1,4) = %q, want %q", s, "bcd")
	}
}

func TestPooledBufferReset(t *testing.T) {
	buf := NewPooledBuffer()
	defer buf.Release()

	buf.Write([]byte("data"))
	buf.SetReaderIndex(2)
	buf.Reset()

	if buf.WriterIndex() != 0 || buf.ReaderIndex() != 0 {
		t.Fatalf("Reset did not clear indices: writer=%d reader=%d", buf.WriterIndex(), buf.ReaderIndex())
	}
}

func TestPooledBufferAppendAcrossWrites(t *testing.T) {
	buf := NewPooledBuffer()
	defer buf.Release()

	buf.Write([]byte("foo"))
	buf.Write([]byte("bar"))
	if got := string(buf.Slice(0, buf.WriterIndex())); got != "foobar" {
		t.Fatalf("got %q, want %q", got, "foobar")
	}
}
