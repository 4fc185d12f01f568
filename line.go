package bertrand

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// InfiniteSlope is the slope reported for vertical lines.
var InfiniteSlope = math.Inf(1)

// Line is a segment between two points.
//
// Lines built with NewLine keep their endpoints ordered left to right,
// A.X <= B.X. A zero-length line is valid; callers that need a real segment
// check Length.
type Line struct {
	A, B Point
	Name string
}

// NewLine returns the segment between a and b, ordered so that A.X <= B.X.
// The name defaults to the concatenation of the endpoint labels.
func NewLine(a, b Point) Line {
	if b.X < a.X {
		a, b = b, a
	}
	return Line{A: a, B: b, Name: a.Name + b.Name}
}

// Named returns a copy of l carrying the given label.
func (l Line) Named(name string) Line {
	l.Name = name
	return l
}

// Length returns the Euclidean distance between the endpoints.
func (l Line) Length() float64 {
	return l.A.Distance(l.B)
}

// LongerThan reports whether l is strictly longer than other.
func (l Line) LongerThan(other Line) bool {
	return l.Length() > other.Length()
}

// IsVertical reports whether both endpoints share the same x coordinate.
func (l Line) IsVertical() bool {
	return l.A.X == l.B.X
}

// Slope returns dy/dx, or InfiniteSlope for a vertical line.
func (l Line) Slope() float64 {
	if l.IsVertical() {
		return InfiniteSlope
	}
	return (l.B.Y - l.A.Y) / (l.B.X - l.A.X)
}

// Direction returns the unit vector from A to B.
// A zero-length line has the zero direction.
func (l Line) Direction() Point {
	return l.B.Sub(l.A).Normalize()
}

// Middle returns the midpoint of the segment.
func (l Line) Middle() Point {
	return Point{X: (l.A.X + l.B.X) / 2, Y: (l.A.Y + l.B.Y) / 2}
}

// RandomPoint returns a point of the segment sampled on the integer grid.
//
// A vertical segment is sampled on integer y values at its fixed x. Any
// other segment is sampled on integer x values between its endpoints with y
// taken from the line equation. The distribution is uniform over the grid,
// not over arc length. Segments whose x extent holds no integer fall back to
// the y grid, and segments with no grid value at all return the midpoint.
func (l Line) RandomPoint(rng *rand.Rand) Point {
	if l.IsVertical() {
		if y, ok := gridValue(rng, l.A.Y, l.B.Y); ok {
			return Point{X: l.A.X, Y: y}
		}
		return l.Middle()
	}

	m := l.Slope()
	k := l.A.Y - m*l.A.X
	if x, ok := gridValue(rng, l.A.X, l.B.X); ok {
		return Point{X: x, Y: m*x + k}
	}
	if y, ok := gridValue(rng, l.A.Y, l.B.Y); ok && m != 0 {
		return Point{X: (y - k) / m, Y: y}
	}
	return l.Middle()
}

// maxGridSpan is the widest span sampled index by index. Above it every
// float64 is already an integer and values are drawn continuously.
const maxGridSpan = 1 << 53

// gridValue draws a uniform integer between lo and hi inclusive.
func gridValue(rng *rand.Rand, lo, hi float64) (float64, bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	a, b := math.Ceil(lo), math.Floor(hi)
	if !(a <= b) {
		return 0, false
	}
	if span := b - a; span < maxGridSpan {
		return a + float64(rng.Int64N(int64(span)+1)), true
	}
	// a*(1-u) + b*u stays finite where b-a overflows.
	u := rng.Float64()
	v := math.Round(a*(1-u) + b*u)
	return math.Min(math.Max(v, a), b), true
}

// String renders the line as "name = length".
func (l Line) String() string {
	name := l.Name
	if name == "" {
		name = "length"
	}
	return name + " = " + strconv.FormatFloat(l.Length(), 'f', 3, 64)
}
