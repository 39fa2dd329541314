package pdf

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Substitutes for runes the base-14 fonts cannot draw.
var glyphFallbacks = map[rune]string{
	'₱': "PHP ",
	'\t': " ",
}

// EncodeWinAnsi converts s to Windows-1252 bytes. Runes outside the code page
// use glyphFallbacks, else '?'.
func EncodeWinAnsi(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if sub, ok := glyphFallbacks[r]; ok {
			out = append(out, sub...)
			continue
		}
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		out = append(out, '?')
	}
	return out
}

var literalEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"(", "\\(",
	")", "\\)",
	"\r", "\\r",
	"\n", "\\n",
)

// escapeLiteral encodes s for use inside a PDF literal string "( ... )".
func escapeLiteral(s string) string {
	return literalEscaper.Replace(string(EncodeWinAnsi(s)))
}
