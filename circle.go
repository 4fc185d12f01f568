package bertrand

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/jbeda/geom"
)

// Tolerance is the rounding band used by containment tests: a distance
// counts as equal to the radius when it rounds to it.
const Tolerance = 0.5

// MaxRetries bounds every rejection or resampling loop.
const MaxRetries = 1000

// Circle is a circle with a strictly positive radius.
// Circles are immutable; use NewCircle to build one.
type Circle struct {
	center Point
	radius float64
	name   string
}

// NewCircle returns a circle of the given center and radius.
// It fails with ErrInvalidRadius when radius is not strictly positive
// and finite.
func NewCircle(center Point, radius float64) (Circle, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return Circle{}, fmt.Errorf("new circle with radius %v: %w", radius, ErrInvalidRadius)
	}
	return Circle{center: center, radius: radius}, nil
}

// Named returns a copy of c carrying the given label.
func (c Circle) Named(name string) Circle {
	c.name = name
	return c
}

// Center returns the center of the circle.
func (c Circle) Center() Point { return c.center }

// Radius returns the radius of the circle.
func (c Circle) Radius() float64 { return c.radius }

// Name returns the label of the circle.
func (c Circle) Name() string { return c.name }

// Bounds returns the square enclosing the circle.
func (c Circle) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: c.center.X - c.radius, Y: c.center.Y - c.radius},
		Max: geom.Coord{X: c.center.X + c.radius, Y: c.center.Y + c.radius},
	}
}

// Contains reports whether p lies inside the circle or on its border,
// the distance to the center being rounded to the nearest unit.
func (c Circle) Contains(p Point) bool {
	return c.center.Distance(p)-c.radius < Tolerance
}

// PerimeterContains reports whether p lies on the border of the circle,
// the distance to the center being rounded to the nearest unit.
func (c Circle) PerimeterContains(p Point) bool {
	d := c.center.Distance(p) - c.radius
	return d >= -Tolerance && d < Tolerance
}

// PointAt returns the perimeter point at the given angle in degrees.
// Multiples of 90 degrees are exact.
func (c Circle) PointAt(degrees int) Point {
	sin, cos := sincosDegrees(degrees)
	return Point{X: c.center.X + c.radius*cos, Y: c.center.Y + c.radius*sin}
}

// sincosDegrees returns sin and cos of an integer angle in degrees.
func sincosDegrees(degrees int) (sin, cos float64) {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	switch degrees {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(float64(degrees) * math.Pi / 180)
}

// RandomPointFromPerimeter returns a point of the border at a uniformly
// drawn integer angle in [0, 360) degrees.
//
// The point is not rounded to the integer grid: rounded points can fall
// outside the PerimeterContains band. Call Round for grid coordinates.
func (c Circle) RandomPointFromPerimeter(rng *rand.Rand) Point {
	return c.PointAt(rng.IntN(360))
}

// RandomPointFromArea returns a uniformly drawn integer point contained in
// the circle. It rejects samples of the bounding square and gives up with
// ErrRetryLimit after MaxRetries attempts.
func (c Circle) RandomPointFromArea(rng *rand.Rand) (Point, error) {
	b := c.Bounds()
	for range MaxRetries {
		p := RandomPointIn(rng, b.Min.X, b.Max.X, b.Min.Y, b.Max.Y)
		if c.Contains(p) {
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("random point from area: %w", ErrRetryLimit)
}

// RandomRadius returns the segment from the center to a random perimeter
// point.
func (c Circle) RandomRadius(rng *rand.Rand) Line {
	return NewLine(c.center, c.RandomPointFromPerimeter(rng))
}

// VerticalRadius returns the segment from the center to (cx, cy+radius).
func (c Circle) VerticalRadius() Line {
	return NewLine(c.center, Point{X: c.center.X, Y: c.center.Y + c.radius})
}

// EquilateralTriangle returns the equilateral triangle inscribed in c with
// vertices at 0, 120 and -120 degrees.
func (c Circle) EquilateralTriangle() Triangle {
	return NewTriangle(c.PointAt(0), c.PointAt(120), c.PointAt(-120))
}

// EquilateralTriangleFrom returns the inscribed equilateral triangle having
// start as its first vertex. start must lie on the perimeter.
func (c Circle) EquilateralTriangleFrom(start Point) (Triangle, error) {
	if !c.PerimeterContains(start) {
		return Triangle{}, fmt.Errorf("equilateral triangle from %v: %w", start, ErrNotOnPerimeter)
	}
	const third = 2 * math.Pi / 3
	b := start.RotateAround(c.center, third)
	cc := start.RotateAround(c.center, -third)
	return NewTriangle(start, b, cc), nil
}

// String renders the circle with its center and radius.
func (c Circle) String() string {
	return c.name + " center " + c.center.String() + ", radius " + strconv.FormatFloat(c.radius, 'g', -1, 64)
}
