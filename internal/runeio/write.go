package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteANSIRune writes a rune to the given writer:
//   - ASCII runes are written directly as bytes
//   - NEL is written as the more conventional \r\n
//   - all other C1 controls are written in their classic 7-bit form,
//     e.g. "\x1b\x5b" for CSI
//   - invalid runes are written as the replacement character
//   - all other runes are written in utf8 form
func WriteANSIRune(w io.Writer, r rune) (n int, err error) {
	switch {
	case 0 <= r && r < 0x80:
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	case r == 0x85:
		return w.Write([]byte{'\r', '\n'})
	case 0x80 <= r && r <= 0x9f:
		return w.Write([]byte{0x1b, byte(r ^ 0xc0)})
	case !utf8.ValidRune(r):
		r = utf8.RuneError
	}
	var buf [utf8.UTFMax]byte
	return w.Write(buf[:utf8.EncodeRune(buf[:], r)])
}
