package hpack

import "testing"

func TestHuffmanTableHasAllSymbols(t *testing.T) {
	if len(huffmanCodes) != 257 {
		t.Fatalf("len(huffmanCodes) = %d, want 257", len(huffmanCodes))
	}
	for i, c := range huffmanCodes {
		if c.bits == 0 || c.bits > 30 {
			t.Fatalf("huffmanCodes[%d] has implausible bit length %d", i, c.bits)
		}
	}
}

func TestAppendHuffmanRFCExample(t *testing.T) {
	// RFC 7541 C.4.1: "www.example.com" Huffman-encodes to this 12-byte string.
	want := []byte{
		0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0, 0xab, 0x90, 0xf4, 0xff,
	}
	got := appendHuffman(nil, []byte("www.example.com"))
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d (%#v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("appendHuffman(www.example.com) = %#v, want %#v", got, want)
		}
	}
}

func TestHuffmanEncodedLengthMatchesOutput(t *testing.T) {
	for _, s := range []string{"", "a", "www.example.com", "no-cache", "custom-key", "custom-value"} {
		got := appendHuffman(nil, []byte(s))
		n := huffmanEncodedLength([]byte(s))
		if n != len(got) {
			t.Fatalf("huffmanEncodedLength(%q) = %d, want %d", s, n, len(got))
		}
	}
}

func TestAppendHuffmanPadsFinalByteWithOnes(t *testing.T) {
	got := appendHuffman(nil, []byte("a"))
	// 'a' has a 5-bit code; the remaining 3 low bits of the single output
	// byte must be padded with 1s.
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0]&0x07 != 0x07 {
		t.Fatalf("padding bits = %#x, want 0x07", got[0]&0x07)
	}
}
