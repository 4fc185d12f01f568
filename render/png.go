package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/bertrand"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 256

// PNG is a Sink that rasterizes into an in-memory image and encodes it as
// PNG on Close.
type PNG struct {
	// LineWidth is the stroke width in pixels. Defaults to 1.5.
	LineWidth float64
	// MarkerRadius is the radius of point markers. Defaults to 3.
	MarkerRadius float64
	// Background fills the surface on Open. Defaults to white.
	Background color.Color

	w   io.Writer
	img *image.NRGBA
	z   *vector.Rasterizer
}

// NewPNG returns a PNG sink writing to w.
func NewPNG(w io.Writer) *PNG {
	return &PNG{
		LineWidth:    1.5,
		MarkerRadius: 3,
		Background:   color.White,
		w:            w,
	}
}

// Open implements Sink.
func (s *PNG) Open(win Window) error {
	if err := win.Validate(); err != nil {
		return err
	}
	s.img = image.NewNRGBA(image.Rect(0, 0, win.Width, win.Height))
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
	s.z = vector.NewRasterizer(win.Width, win.Height)
	return nil
}

// Image returns the surface drawn so far, or nil before Open.
func (s *PNG) Image() *image.NRGBA {
	return s.img
}

// Circle implements Sink.
func (s *PNG) Circle(center bertrand.Point, radius float64, col color.Color) {
	half := s.LineWidth / 2
	s.fill(col, func(z *vector.Rasterizer) {
		polygon(z, center, radius+half, false)
		if inner := radius - half; inner > 0 {
			polygon(z, center, inner, true)
		}
	})
}

// Line implements Sink.
func (s *PNG) Line(a, b bertrand.Point, col color.Color) {
	d := b.Sub(a)
	if d.Length() == 0 {
		d = bertrand.Pt(1, 0)
	}
	n := d.Normalize().Perp().Mul(s.LineWidth / 2)
	s.fill(col, func(z *vector.Rasterizer) {
		p0, p1, p2, p3 := a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)
		z.MoveTo(float32(p0.X), float32(p0.Y))
		z.LineTo(float32(p1.X), float32(p1.Y))
		z.LineTo(float32(p2.X), float32(p2.Y))
		z.LineTo(float32(p3.X), float32(p3.Y))
		z.ClosePath()
	})
}

// Point implements Sink. The label is drawn above the marker.
func (s *PNG) Point(p bertrand.Point, col color.Color) {
	s.fill(col, func(z *vector.Rasterizer) {
		polygon(z, p, s.MarkerRadius, false)
	})
	if p.Name != "" {
		s.Text(bertrand.Pt(p.X-5, p.Y-8), p.Name, col)
	}
}

// Text implements Sink using the 7x13 basic font.
func (s *PNG) Text(at bertrand.Point, text string, col color.Color) {
	if s.img == nil || text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(at.X * 64), Y: fixed.Int26_6(at.Y * 64)},
	}
	d.DrawString(text)
}

// Flush implements Sink. Drawing is immediate, so Flush only reports
// whether the sink is open.
func (s *PNG) Flush() error {
	if s.img == nil {
		return ErrNotOpen
	}
	return nil
}

// Close encodes the image and closes the writer when it is an io.Closer.
func (s *PNG) Close() error {
	if s.img == nil {
		return errors.Join(ErrNotOpen, closeWriter(s.w))
	}
	err := png.Encode(s.w, s.img)
	return errors.Join(err, closeWriter(s.w))
}

// fill rasterizes the path built by build and composites it in col.
func (s *PNG) fill(col color.Color, build func(z *vector.Rasterizer)) {
	if s.img == nil {
		return
	}
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	build(s.z)
	s.z.Draw(s.img, b, image.NewUniform(col), image.Point{})
}

// polygon adds a closed circle approximation to z. Reversed winding cuts
// a hole out of an enclosing polygon.
func polygon(z *vector.Rasterizer, center bertrand.Point, radius float64, reverse bool) {
	step := 2 * math.Pi / circleSegments
	if reverse {
		step = -step
	}
	for i := range circleSegments {
		sin, cos := math.Sincos(float64(i) * step)
		x, y := float32(center.X+radius*cos), float32(center.Y+radius*sin)
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}
