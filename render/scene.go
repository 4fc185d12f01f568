package render

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/gogpu/bertrand"
)

// Style holds the colors used by DrawScene.
type Style struct {
	Circle   color.Color
	Triangle color.Color
	Chord    color.Color
	// Longer colors chords longer than the triangle side. Nil draws them
	// with Chord.
	Longer color.Color
	Point  color.Color
	Text   color.Color
}

// DefaultStyle returns black outlines with light blue chords.
func DefaultStyle() Style {
	return Style{
		Circle:   colornames.Black,
		Triangle: colornames.Gray,
		Chord:    colornames.Lightblue,
		Longer:   colornames.Darkorange,
		Point:    colornames.Red,
		Text:     colornames.Black,
	}
}

// Scene is a circle with its reference triangle, sampled chords and
// labeled points.
type Scene struct {
	Circle   bertrand.Circle
	Triangle *bertrand.Triangle
	Chords   []bertrand.Line
	Points   []bertrand.Point
	// Caption is drawn in the top-left corner.
	Caption string
	Style   Style
}

// DrawScene draws sc on an open sink and flushes it. Chords are drawn
// first so that the circle outline stays visible on top.
func DrawScene(s Sink, sc Scene) error {
	st := sc.Style
	if st == (Style{}) {
		st = DefaultStyle()
	}

	var threshold float64
	if sc.Triangle != nil {
		threshold = sc.Triangle.SideLen()
	}
	for _, chord := range sc.Chords {
		col := st.Chord
		if st.Longer != nil && sc.Triangle != nil && chord.Length() > threshold {
			col = st.Longer
		}
		s.Line(chord.A, chord.B, col)
	}

	if sc.Triangle != nil {
		for _, side := range sc.Triangle.Sides() {
			s.Line(side.A, side.B, st.Triangle)
		}
	}
	s.Circle(sc.Circle.Center(), sc.Circle.Radius(), st.Circle)
	for _, p := range sc.Points {
		s.Point(p, st.Point)
	}
	if sc.Caption != "" {
		s.Text(bertrand.Pt(10, 20), sc.Caption, st.Text)
	}

	bertrand.Logger().Debug("render: scene drawn", "chords", len(sc.Chords), "points", len(sc.Points))
	return s.Flush()
}
