package sink

import (
	"bytes"
	"fmt"

	"github.com/staveline/staveline/pkg/engrave"
	"github.com/staveline/staveline/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	ink        string
	showTitle  bool
}

// WithBackground sets the page color (default white).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithInk sets the stroke and fill color (default black).
func WithInk(color string) SVGOption {
	return func(r *svgRenderer) { r.ink = color }
}

// WithoutTitle suppresses the title text above the staves.
func WithoutTitle() SVGOption {
	return func(r *svgRenderer) { r.showTitle = false }
}

// RenderSVG draws an engraved layout as an SVG document. Staff furniture
// is painted first, then beams, stems, heads, and accidentals, so note
// heads always sit on top of the lines they overlap.
func RenderSVG(l engrave.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{background: "white", ink: "black", showTitle: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)

	for _, s := range l.StaffLines {
		r.line(&buf, s.X1, s.Y, s.X2, s.Y, l.StrokeWidth)
	}
	for _, b := range l.Braces {
		r.brace(&buf, b, l.StrokeWidth)
	}
	for _, b := range l.BarLines {
		r.line(&buf, b.X, b.Y1, b.X, b.Y2, l.StrokeWidth)
	}
	for _, c := range l.Clefs {
		r.glyph(&buf, c.Pos.X, c.Pos.Y, c.Glyph, c.FontSize)
	}
	for _, a := range l.Signature {
		r.glyph(&buf, a.Pos.X, a.Pos.Y, a.Glyph, a.FontSize)
	}
	for _, b := range l.Beams {
		r.line(&buf, b.From.X, b.From.Y, b.To.X, b.To.Y, b.Thickness)
	}
	for _, s := range l.Stems {
		r.line(&buf, s.X, s.Y1, s.X, s.Y2, l.StrokeWidth)
	}
	for _, h := range l.Heads {
		r.head(&buf, h, l.StrokeWidth)
	}
	for _, a := range l.Accidentals {
		r.glyph(&buf, a.Pos.X, a.Pos.Y, a.Glyph, a.FontSize)
	}

	if r.showTitle && l.Title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" font-family="serif" fill="%s">%s</text>`+"\n",
			l.Width/2, l.Height*0.06, l.Height*0.05, r.ink, escape(l.Title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) line(buf *bytes.Buffer, x1, y1, x2, y2, width float64) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, r.ink, width)
}

func (r *svgRenderer) head(buf *bytes.Buffer, h render.NoteHead, strokeWidth float64) {
	fill, stroke := r.ink, "none"
	if !h.Filled {
		fill, stroke = "none", r.ink
	}
	fmt.Fprintf(buf, `  <ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"`,
		h.Center.X, h.Center.Y, h.RX, h.RY, fill, stroke, strokeWidth)
	if h.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%.1f %.2f %.2f)"`, h.Rotation, h.Center.X, h.Center.Y)
	}
	buf.WriteString("/>\n")
}

func (r *svgRenderer) glyph(buf *bytes.Buffer, x, y float64, glyph string, fontSize float64) {
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
		x, y, fontSize, r.ink, escape(glyph))
}

// brace draws the grand staff bracket as two mirrored cubic curves
// bulging left of the staves.
func (r *svgRenderer) brace(buf *bytes.Buffer, b render.Brace, strokeWidth float64) {
	midY := (b.Y1 + b.Y2) / 2
	fmt.Fprintf(buf, `  <path d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		b.X, b.Y1,
		b.X-b.Width, b.Y1, b.X-b.Width, midY, b.X-b.Width/4, midY,
		b.X-b.Width, midY, b.X-b.Width, b.Y2, b.X, b.Y2,
		r.ink, strokeWidth*2)
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
