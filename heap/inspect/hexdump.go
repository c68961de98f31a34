package inspect

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

const bytesPerLine = 16

// Hexdump writes data to w as offset, hex and glyph columns, sixteen bytes
// per line. Offsets start at base. Printable bytes are shown with their code
// page 437 glyph, so box-drawing and accented bytes stay readable; control
// bytes show as '.'.
func Hexdump(w io.Writer, data []byte, base int) error {
	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += bytesPerLine {
		line := data[off:min(off+bytesPerLine, len(data))]

		fmt.Fprintf(bw, "%08x ", base+off)
		for i := range bytesPerLine {
			if i == bytesPerLine/2 {
				bw.WriteByte(' ')
			}
			if i < len(line) {
				fmt.Fprintf(bw, " %02x", line[i])
			} else {
				bw.WriteString("   ")
			}
		}
		bw.WriteString("  |")
		for _, b := range line {
			bw.WriteRune(Glyph(b))
		}
		bw.WriteString("|\n")
	}
	return bw.Flush()
}

// Glyph returns the code page 437 glyph for b, or '.' for control bytes.
func Glyph(b byte) rune {
	if b < 0x20 || b == 0x7f {
		return '.'
	}
	return charmap.CodePage437.DecodeByte(b)
}
