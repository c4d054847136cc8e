package util

import (
	"fmt"
	"strings"
)

func hexLine(data []byte, length int) string {
	var hex, ascii strings.Builder
	for i := 0; i < length; i++ {
		if i < len(data) {
			fmt.Fprintf(&hex, "%02x ", data[i])
			if data[i] >= 0x20 && data[i] < 0x7F {
				ascii.WriteByte(data[i])
			} else {
				ascii.WriteByte('.')
			}
		} else {
			hex.WriteString("   ")
			ascii.WriteByte(' ')
		}
	}
	return hex.String() + "| " + ascii.String()
}

// HexDump formats data[start:start+len] as 16 bytes per line, prefixed with
// the offset of the line.
func HexDump(data []byte, start, len int) string {
	var res strings.Builder
	for len > 16 {
		fmt.Fprintf(&res, "%08x: %s\n", start, hexLine(data[start:start+16], 16))
		start += 16
		len -= 16
	}
	if len > 0 {
		fmt.Fprintf(&res, "%08x: %s\n", start, hexLine(data[start:start+len], 16))
	}
	return res.String()
}
