package hpack

// Variable-length integer encoding, RFC 7541 §5.1.
//
// An integer is encoded with a prefix of N bits (1 <= N <= 8) inside a byte
// whose remaining high bits carry a representation-specific mask M. If the
// value fits in the prefix it is written as a single byte; otherwise the
// prefix is filled with all ones and the remainder follows as a little-endian
// base-128 continuation, each byte's top bit signalling "more bytes follow".

// appendInteger appends the RFC 7541 §5.1 encoding of value to dst and
// returns the extended slice. prefixBits is the number of low bits of the
// first byte available to the integer (1-8); mask is ORed, unshifted, into
// the unused high bits of that first byte.
func appendInteger(dst []byte, value uint64, prefixBits uint, mask byte) []byte {
	max := uint64(1)<<prefixBits - 1

	if value < max {
		return append(dst, mask|byte(value))
	}

	dst = append(dst, mask|byte(max))
	value -= max

	for value >= 128 {
		dst = append(dst, byte(value&0x7f)|0x80)
		value >>= 7
	}
	return append(dst, byte(value))
}
