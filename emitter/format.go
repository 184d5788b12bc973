package emitter

import (
	"io"
	"strings"

	"github.com/awantoch/eepromgen/blob"
	"github.com/awantoch/eepromgen/constants"
)

const hexDigits = "0123456789abcdef"

// Identifier derives the array name for ref: prefix followed by the base
// name up to its first dot. A base name without a dot is used whole.
func Identifier(ref, prefix string) string {
	stem, _, _ := strings.Cut(blob.Name(ref), ".")
	return prefix + stem
}

// AppendBody appends the array body for data to dst: every byte as
// "0xhh,", a newline and indent before each run of perLine bytes and a
// single space between bytes on the same line. Empty data appends nothing.
func AppendBody(dst, data []byte, perLine int) []byte {
	if perLine <= 0 {
		perLine = constants.DefaultBytesPerLine
	}
	for i, b := range data {
		if i%perLine == 0 {
			dst = append(dst, '\n')
			dst = append(dst, constants.DefaultIndent...)
		} else {
			dst = append(dst, ' ')
		}
		dst = append(dst, '0', 'x', hexDigits[b>>4], hexDigits[b&0x0f], ',')
	}
	return dst
}

// WriteBody writes the array body for data to w.
func WriteBody(w io.Writer, data []byte, perLine int) error {
	_, err := w.Write(AppendBody(nil, data, perLine))
	return err
}

// bodySize is the exact length AppendBody produces for n bytes.
func bodySize(n, perLine int) int {
	if perLine <= 0 {
		perLine = constants.DefaultBytesPerLine
	}
	lines := (n + perLine - 1) / perLine
	return n*5 + (n - lines) + lines*(1+len(constants.DefaultIndent))
}

// carray renders the braces and body of an array initializer.
func carray(data []byte, perLine int) string {
	buf := make([]byte, 0, bodySize(len(data), perLine)+3)
	buf = append(buf, '{')
	buf = AppendBody(buf, data, perLine)
	buf = append(buf, '\n', '}')
	return string(buf)
}
