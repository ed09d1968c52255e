package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText decodes a credits text file. UTF-8 and UTF-16 with a byte
// order mark are recognised; BOM-less input full of NUL bytes is read as
// UTF-16LE, anything else as UTF-8.
func DecodeText(data []byte) (string, error) {
	var decoder transform.Transformer
	if !hasBOM(data) && looksUTF16LE(data) {
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	} else {
		decoder = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}

	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

// Lines splits decoded text into lines without trailing CR/LF
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// CollapseSpace trims and collapses runs of whitespace
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitNames splits a multi-column line on sep, dropping empty cells
func SplitNames(line, sep string) []string {
	var out []string
	for _, part := range strings.Split(line, sep) {
		if name := CollapseSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

// looksUTF16LE checks whether most odd bytes of a short prefix are NUL
func looksUTF16LE(data []byte) bool {
	n := len(data)
	if n > 512 {
		n = 512
	}
	if n < 4 {
		return false
	}
	zeros := 0
	pairs := 0
	for i := 1; i < n; i += 2 {
		pairs++
		if data[i] == 0 {
			zeros++
		}
	}
	return zeros*2 > pairs
}
