// Package render draws bertrand geometry to image sinks.
//
// The geometry packages never import render: callers hand points, lines and
// circles to a Sink. Two sinks are provided, PNG (rasterized with
// golang.org/x/image/vector) and SVG.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/bertrand"
)

var (
	// ErrInvalidWindow is returned when a sink is opened with a
	// non-positive size.
	ErrInvalidWindow = errors.New("render: window size must be positive")

	// ErrNotOpen is returned when a sink is flushed or closed before Open.
	ErrNotOpen = errors.New("render: sink is not open")

	// ErrUnknownFormat is returned by Create for an unsupported extension.
	ErrUnknownFormat = errors.New("render: unknown output format")
)

// Window describes the drawing surface.
type Window struct {
	Width, Height int
}

// DefaultWindow is the 1000x1000 surface used when nothing is configured.
var DefaultWindow = Window{Width: 1000, Height: 1000}

// Validate reports whether both dimensions are positive.
func (w Window) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, w.Width, w.Height)
	}
	return nil
}

// Sink receives draw requests.
//
// Draw calls made before Open or after a failed Open are ignored; the
// failure surfaces from Flush or Close. Coordinates are in window pixels,
// origin top-left.
type Sink interface {
	// Open prepares a blank surface.
	Open(win Window) error
	// Circle draws the outline of a circle.
	Circle(center bertrand.Point, radius float64, col color.Color)
	// Line draws a segment.
	Line(a, b bertrand.Point, col color.Color)
	// Point draws a marker at p labeled with p.Name.
	Point(p bertrand.Point, col color.Color)
	// Text draws s with its baseline starting at at.
	Text(at bertrand.Point, s string, col color.Color)
	// Flush reports the first drawing error. The output is complete only
	// after Close.
	Flush() error
	// Close finishes the output and releases it.
	Close() error
}

// Create opens the file at path and returns the sink matching its
// extension (.png or .svg), already opened with win.
func Create(path string, win Window) (Sink, error) {
	if err := win.Validate(); err != nil {
		return nil, err
	}

	var newSink func(io.Writer) Sink
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		newSink = func(w io.Writer) Sink { return NewPNG(w) }
	case ".svg":
		newSink = func(w io.Writer) Sink { return NewSVG(w) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	s := newSink(f)
	if err := s.Open(win); err != nil {
		return nil, errors.Join(err, f.Close())
	}
	return s, nil
}

// closeWriter closes w when it is an io.Closer.
func closeWriter(w io.Writer) error {
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
