// Package bertrand provides planar geometry primitives for exploring
// Bertrand's paradox.
//
// # Overview
//
// Bertrand's paradox asks for the probability that a random chord of a
// circle is longer than a side of the inscribed equilateral triangle. The
// answer depends on how the chord is drawn, and this package implements the
// three classical methods on top of small value types:
//
//   - Point: a coordinate pair with an optional label
//   - Line: a segment ordered left to right
//   - Circle: center and strictly positive radius, with sampling and chords
//   - Triangle: three vertices, used as the reference shape
//
// # Quick Start
//
//	c, err := bertrand.NewCircle(bertrand.Pt(500, 500), 300)
//	if err != nil {
//	    return err
//	}
//	rng := bertrand.NewRand(1)
//	chord, err := c.RandomChord1(rng)
//	if err != nil {
//	    return err
//	}
//	longer := chord.Length() > c.EquilateralTriangle().SideLen()
//
// The sim package runs many trials and accumulates the estimate; the render
// package draws circles and chords to PNG or SVG.
//
// # Coordinate System
//
// Coordinates follow screen conventions (origin top-left, y down) so that
// geometry can be handed to a drawing sink unchanged. Angles passed to
// Circle.PointAt are integer degrees, counter-clockwise in a y-up frame.
//
// # Sampling
//
// All random operations take an explicit *rand.Rand. Seed it once with
// NewRand and share it; independent parallel workers use NewStream.
// Sampling happens on the integer grid, matching a pixel canvas, and
// containment tests round distances to the nearest unit (Tolerance).
package bertrand

// Version is the current version of the library.
const Version = "0.1.0"
