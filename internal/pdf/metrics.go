package pdf

// Glyph widths from the Adobe core-font AFM files, in 1/1000 em, for the
// printable ASCII range 32..126 under WinAnsiEncoding.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
	333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

// upper half of WinAnsi that shows up in names and dashes
var helveticaHigh = map[byte]int{
	0x96: 556, 0x97: 1000, 0xA0: 278,
	0xC1: 667, 0xC9: 667, 0xCD: 278, 0xD1: 722, 0xD3: 778, 0xDA: 722,
	0xE1: 556, 0xE9: 556, 0xED: 278, 0xF1: 556, 0xF3: 556, 0xFA: 556,
}

var helveticaBoldHigh = map[byte]int{
	0x96: 556, 0x97: 1000, 0xA0: 278,
	0xC1: 722, 0xC9: 667, 0xCD: 278, 0xD1: 722, 0xD3: 778, 0xDA: 722,
	0xE1: 556, 0xE9: 556, 0xED: 278, 0xF1: 611, 0xF3: 611, 0xFA: 611,
}

func glyphWidth(f Font, b byte) int {
	bold := f == HelveticaBold
	if b >= 32 && b <= 126 {
		if bold {
			return helveticaBoldWidths[b-32]
		}
		return helveticaWidths[b-32]
	}
	if bold {
		if w, ok := helveticaBoldHigh[b]; ok {
			return w
		}
		return 611
	}
	if w, ok := helveticaHigh[b]; ok {
		return w
	}
	return 556
}

// StringWidth returns the advance width of s in points.
func StringWidth(s string, f Font, size float64) float64 {
	total := 0
	for _, b := range EncodeWinAnsi(s) {
		total += glyphWidth(f, b)
	}
	return float64(total) * size / 1000
}
