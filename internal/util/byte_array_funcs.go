package util

import (
	"bytes"
)

func ReadLEUint16(b []byte, offset int) uint16 {
	return uint16(b[offset]) | uint16(b[offset+1])<<8
}

func WriteLEUint16(b []byte, offset int, value uint16) {
	b[offset] = byte(value & 0xFF)
	b[offset+1] = byte((value >> 8) & 0xFF)
}

// StringFromBytes returns b as a string with all trailing bytes contained in
// cutset removed.
func StringFromBytes(b []byte, cutset string) string {
	return string(bytes.TrimRight(b, cutset))
}

// WriteFixedLengthString copies s to b[offset:] and fills the rest of the
// field with pad. s must not be longer than length.
func WriteFixedLengthString(b []byte, offset int, length int, s string, pad byte) {
	copy(b[offset:offset+length], s)
	for i := len(s); i < length; i++ {
		b[offset+i] = pad
	}
}

// AllEqual reports whether every byte of b equals b[0]. An empty slice is not
// considered uniform.
func AllEqual(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b[1:] {
		if c != b[0] {
			return false
		}
	}
	return true
}

// Repeat returns a slice of n copies of c.
func Repeat(c byte, n int) []byte {
	return bytes.Repeat([]byte{c}, n)
}
