package hpack

// Static Huffman encoding, RFC 7541 Appendix B.
//
// Each input byte is treated as an 8-bit ISO-8859-1 code point and looked up
// in huffmanCodes. A bit accumulator collects the variable-length codes and
// flushes whole bytes as they fill; the final partial byte is padded with
// 1-bits, matching the EOS prefix, up to a byte boundary.
//
// Grounded on the bit-accumulator shape of
// shockwave/pkg/shockwave/http3/qpack/huffman.go's HuffmanEncode, adapted to
// operate on a byte slice rather than a string and to expose a separate
// length-only pass for the caller's Huffman-vs-raw size comparison.

// huffmanEncodedLength returns the number of bytes encode would append for
// s, without producing output.
func huffmanEncodedLength(s []byte) int {
	bits := 0
	for _, b := range s {
		bits += int(huffmanCodes[b].bits)
	}
	return (bits + 7) / 8
}

// appendHuffman appends the Huffman encoding of s to dst and returns the
// extended slice. The final byte's unused low bits are padded with 1s.
func appendHuffman(dst []byte, s []byte) []byte {
	var accumulator uint64
	var nbits uint

	for _, b := range s {
		c := huffmanCodes[b]
		accumulator = (accumulator << c.bits) | uint64(c.code)
		nbits += uint(c.bits)

		for nbits >= 8 {
			nbits -= 8
			dst = append(dst, byte(accumulator>>nbits))
		}
	}

	if nbits > 0 {
		pad := 8 - nbits
		dst = append(dst, byte((accumulator<<pad)|(1<<pad-1)))
	}

	return dst
}
