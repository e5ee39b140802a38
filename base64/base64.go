// Package base64 implements the lake's own 64-symbol, URL-safe alphabet
// used to render binary identifiers as printable strings. It is not
// compatible with the standard library's encoding/base64 package: there is
// no padding character, and the symbol table differs from both the
// standard and URL-safe RFC 4648 alphabets.
package base64

// Alphabet is the 64-symbol table used for encoding, indexed by the 6-bit
// value it represents.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789~_"

// decodeTable maps every possible input byte to its 6-bit value. Bytes that
// aren't part of the alphabet or one of the accepted aliases decode to
// their own raw byte value, matching the source's fallback; DecodeBlock
// does not mask that value, so such a byte can also disturb the bits of
// the symbol before it.
var decodeTable [256]byte

func init() {
	for i := range decodeTable {
		decodeTable[i] = byte(i)
	}
	for i := 0; i < len(Alphabet); i++ {
		decodeTable[Alphabet[i]] = byte(i)
	}
	// Compatibility aliases for common base64 variants.
	decodeTable['+'] = 62
	decodeTable['-'] = 62
	decodeTable[','] = 63
	decodeTable['/'] = 63
}

// EncodeBlock maps one 3-byte group onto 4 alphabet symbols.
func EncodeBlock(in [3]byte) [4]byte {
	return [4]byte{
		Alphabet[in[0]>>2],
		Alphabet[((in[0]&0x3)<<4)|(in[1]>>4)],
		Alphabet[((in[1]&0xf)<<2)|(in[2]>>6)],
		Alphabet[in[2]&0x3f],
	}
}

// DecodeBlock is the inverse of EncodeBlock.
func DecodeBlock(in [4]byte) [3]byte {
	var value uint32

	for _, c := range in {
		value <<= 6
		value += uint32(decodeTable[c])
	}

	return [3]byte{
		byte(value >> 16),
		byte(value >> 8),
		byte(value),
	}
}

// Encode returns the base64 rendering of b, with no padding. The output is
// exactly ceil(4*len(b)/3) bytes.
func Encode(b []byte) []byte {
	size := len(b) * 4 / 3
	if len(b)%3 != 0 {
		size++
	}

	out := make([]byte, 0, size)

	for i := 0; i < len(b); i += 3 {
		var in [3]byte
		copy(in[:], b[i:min(i+3, len(b))])

		block := EncodeBlock(in)

		for _, c := range block {
			if len(out) < size {
				out = append(out, c)
			}
		}
	}

	return out
}

// Decode is the inverse of Encode. It also accepts '+'/'-' as 62 and
// ','/'/' as 63, for compatibility with common base64 variants. The output
// is exactly 3*len(encoded)/4 bytes.
func Decode(encoded []byte) []byte {
	size := len(encoded) * 3 / 4

	out := make([]byte, 0, size)

	for i := 0; i < len(encoded); i += 4 {
		var in [4]byte
		copy(in[:], encoded[i:min(i+4, len(encoded))])

		block := DecodeBlock(in)

		for _, c := range block {
			if len(out) < size {
				out = append(out, c)
			}
		}
	}

	return out
}
