package bertrand

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
)

// Point represents a 2D point or vector with an optional label.
//
// The zero Name means the point is unlabeled. Points are values: every
// operation returns a new Point and leaves the receiver unchanged.
type Point struct {
	X, Y float64
	Name string
}

// Pt is a convenience function to create an unlabeled Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Named returns a copy of p carrying the given label.
func (p Point) Named(name string) Point {
	p.Name = name
	return p
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Perp returns the vector rotated a quarter turn counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Rotate returns the point rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateAround returns p rotated by angle radians around center.
// The label is kept.
func (p Point) RotateAround(center Point, angle float64) Point {
	r := p.Sub(center).Rotate(angle).Add(center)
	r.Name = p.Name
	return r
}

// Symmetric returns the reflection of p through center.
func (p Point) Symmetric(center Point) Point {
	return Point{
		X: 2*center.X - p.X,
		Y: 2*center.Y - p.Y,
	}
}

// Round returns p with both coordinates rounded to the nearest integer.
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y), Name: p.Name}
}

// Equals reports whether p and q round to the same integer coordinates.
// Labels are ignored.
func (p Point) Equals(q Point) bool {
	return math.Round(p.X) == math.Round(q.X) && math.Round(p.Y) == math.Round(q.Y)
}

// String renders the point as "Name(x, y)".
func (p Point) String() string {
	return p.Name + "(" + formatCoord(p.X) + ", " + formatCoord(p.Y) + ")"
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RandomPointIn returns a point drawn uniformly from the integer grid of the
// inclusive box [xMin, xMax] x [yMin, yMax]. An axis whose range holds no
// integer uses the rounded lower bound.
func RandomPointIn(rng *rand.Rand, xMin, xMax, yMin, yMax float64) Point {
	x, ok := gridValue(rng, xMin, xMax)
	if !ok {
		x = math.Round(xMin)
	}
	y, ok := gridValue(rng, yMin, yMax)
	if !ok {
		y = math.Round(yMin)
	}
	return Point{X: x, Y: y}
}

// UpperLeftPoint returns the upper-left point of points: the first point
// for which no later point is strictly left of and above it.
func UpperLeftPoint(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, fmt.Errorf("upper left point: %w", ErrNoPoints)
	}
	ul := points[0]
	for _, p := range points[1:] {
		if p.X < ul.X && p.Y < ul.Y {
			ul = p
		}
	}
	return ul, nil
}
