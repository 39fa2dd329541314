// Package pdf writes single-page PDF 1.4 documents using the Helvetica base
// fonts. It covers what a payslip needs: text, right-aligned text, gray fill
// and horizontal rules.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type Font string

const (
	Helvetica     Font = "Helvetica"
	HelveticaBold Font = "Helvetica-Bold"
)

// Page sizes in points.
const (
	A4Width  = 595.2755905511812
	A4Height = 841.8897637795277
	MM       = 72.0 / 25.4
)

var fontResource = map[Font]string{
	Helvetica:     "F1",
	HelveticaBold: "F2",
}

type Page struct {
	Width  float64
	Height float64

	font Font
	size float64
	gray float64

	content strings.Builder
	title   string
	texts   []string
}

func NewPage(width, height float64) *Page {
	return &Page{
		Width:  width,
		Height: height,
		font:   Helvetica,
		size:   12,
	}
}

// SetTitle sets the /Title entry of the document info dictionary.
func (p *Page) SetTitle(title string) {
	p.title = title
}

func (p *Page) SetFont(f Font, size float64) {
	if _, ok := fontResource[f]; !ok {
		f = Helvetica
	}
	p.font = f
	p.size = size
}

// SetGray sets the fill level used for text. 0 is black, 1 is white.
func (p *Page) SetGray(g float64) {
	if g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	p.gray = g
}

// DrawString draws s with its baseline starting at (x, y).
func (p *Page) DrawString(x, y float64, s string) {
	p.texts = append(p.texts, s)
	fmt.Fprintf(&p.content, "BT %s g /%s %s Tf %s %s Td (%s) Tj ET\n",
		num(p.gray), fontResource[p.font], num(p.size), num(x), num(y), escapeLiteral(s))
}

// DrawRightString draws s so that it ends at x.
func (p *Page) DrawRightString(x, y float64, s string) {
	p.DrawString(x-StringWidth(s, p.font, p.size), y, s)
}

// Texts returns every string drawn so far, in drawing order and before
// encoding.
func (p *Page) Texts() []string {
	return append([]string(nil), p.texts...)
}

func (p *Page) Line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&p.content, "%s %s m %s %s l S\n", num(x1), num(y1), num(x2), num(y2))
}

// Bytes serialises the page as a complete PDF file.
func (p *Page) Bytes() []byte {
	stream := strings.TrimSuffix(p.content.String(), "\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>",
			num(p.Width), num(p.Height)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		fmt.Sprintf("<< /Producer (go-payroll) /Title (%s) >>", escapeLiteral(p.title)),
	}

	var out bytes.Buffer
	// binary marker so transfer tools keep the file 8-bit clean
	out.WriteString("%PDF-1.4\n%\xE2\xE3\xCF\xD3\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for i, obj := range objects {
		offsets = append(offsets, out.Len())
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), len(objects), xrefStart)

	return out.Bytes()
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
