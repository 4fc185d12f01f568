package render

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/jbeda/geom"

	"github.com/gogpu/bertrand"
)

// Approximate extent of one monospace glyph at font-size 13.
const (
	glyphWidth  = 7
	glyphHeight = 13
)

// SVG is a Sink writing an SVG document.
//
// The document is written on Close. Its viewBox starts as the window and
// grows to contain everything drawn, so labels and chords past the window
// edge stay visible.
type SVG struct {
	// LineWidth is the stroke width. Defaults to 1.5.
	LineWidth float64
	// MarkerRadius is the radius of point markers. Defaults to 3.
	MarkerRadius float64

	w      io.Writer
	body   bytes.Buffer
	bounds geom.Rect
	open   bool
	err    error
}

// NewSVG returns an SVG sink writing to w.
func NewSVG(w io.Writer) *SVG {
	return &SVG{
		LineWidth:    1.5,
		MarkerRadius: 3,
		w:            w,
	}
}

func (s *SVG) printf(format string, a ...any) {
	if !s.open || s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(&s.body, format, a...)
}

func coord(p bertrand.Point) geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

// contain grows the viewBox to r.
func (s *SVG) contain(r geom.Rect) {
	if s.open {
		s.bounds.ExpandToContainRect(r)
	}
}

// ViewBox returns the area the document will show.
func (s *SVG) ViewBox() geom.Rect {
	return s.bounds
}

// Open implements Sink.
func (s *SVG) Open(win Window) error {
	if err := win.Validate(); err != nil {
		return err
	}
	s.bounds = geom.Rect{Max: geom.Coord{X: float64(win.Width), Y: float64(win.Height)}}
	s.body.Reset()
	s.open = true
	return nil
}

func (s *SVG) stroke(col color.Color) string {
	return fmt.Sprintf("stroke='%s' stroke-opacity='%g' stroke-width='%g' fill='none'", hexString(col), opacity(col), s.LineWidth)
}

// Circle implements Sink.
func (s *SVG) Circle(center bertrand.Point, radius float64, col color.Color) {
	if c, err := bertrand.NewCircle(center, radius); err == nil {
		s.contain(c.Bounds())
	}
	s.printf("<circle cx='%g' cy='%g' r='%g' %s/>\n", center.X, center.Y, radius, s.stroke(col))
}

// Line implements Sink.
func (s *SVG) Line(a, b bertrand.Point, col color.Color) {
	r := geom.Rect{Min: coord(a), Max: coord(a)}
	r.ExpandToContainCoord(coord(b))
	s.contain(r)
	s.printf("<line x1='%g' y1='%g' x2='%g' y2='%g' %s/>\n", a.X, a.Y, b.X, b.Y, s.stroke(col))
}

// Point implements Sink.
func (s *SVG) Point(p bertrand.Point, col color.Color) {
	m := s.MarkerRadius
	s.contain(geom.Rect{
		Min: geom.Coord{X: p.X - m, Y: p.Y - m},
		Max: geom.Coord{X: p.X + m, Y: p.Y + m},
	})
	s.printf("<circle cx='%g' cy='%g' r='%g' fill='%s'/>\n", p.X, p.Y, m, hexString(col))
	if p.Name != "" {
		s.Text(bertrand.Pt(p.X-5, p.Y-8), p.Name, col)
	}
}

// Text implements Sink.
func (s *SVG) Text(at bertrand.Point, text string, col color.Color) {
	if text == "" {
		return
	}
	s.contain(geom.Rect{
		Min: geom.Coord{X: at.X, Y: at.Y - glyphHeight},
		Max: geom.Coord{X: at.X + float64(glyphWidth*len(text)), Y: at.Y},
	})
	var esc strings.Builder
	_ = xml.EscapeText(&esc, []byte(text))
	s.printf("<text x='%g' y='%g' fill='%s' font-family='monospace' font-size='%d'>%s</text>\n",
		at.X, at.Y, hexString(col), glyphHeight, esc.String())
}

// Flush implements Sink. The document is assembled on Close, so Flush only
// reports the first write error.
func (s *SVG) Flush() error {
	if !s.open {
		return ErrNotOpen
	}
	return s.err
}

// Close writes the document and closes the writer when it is an io.Closer.
func (s *SVG) Close() error {
	if !s.open {
		return errors.Join(ErrNotOpen, closeWriter(s.w))
	}
	s.open = false
	if s.err != nil {
		return errors.Join(s.err, closeWriter(s.w))
	}

	v := s.bounds
	buf := bufio.NewWriter(s.w)
	fmt.Fprintf(buf, `<?xml version="1.0"?>
<svg version="1.1"
     width="%g" height="%g"
     viewBox="%g %g %g %g"
     xmlns="http://www.w3.org/2000/svg">
<rect x="%g" y="%g" width="%g" height="%g" fill="white"/>
`, v.Width(), v.Height(), v.Min.X, v.Min.Y, v.Width(), v.Height(), v.Min.X, v.Min.Y, v.Width(), v.Height())
	_, _ = s.body.WriteTo(buf)
	buf.WriteString("</svg>\n")
	return errors.Join(buf.Flush(), closeWriter(s.w))
}
