package bertrand

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// RandomChord1 returns a chord joining two random perimeter points.
// Endpoints that round to the same point are resampled.
func (c Circle) RandomChord1(rng *rand.Rand) (Line, error) {
	for i := range MaxRetries {
		a := c.RandomPointFromPerimeter(rng)
		b := c.RandomPointFromPerimeter(rng)
		if !a.Equals(b) {
			return NewLine(a, b), nil
		}
		Logger().Debug("bertrand: resampling coincident chord endpoints", "attempt", i+1, "point", a.String())
	}
	return Line{}, fmt.Errorf("random chord 1: %w", ErrRetryLimit)
}

// RandomChord2 returns the chord whose midpoint is a random point of a
// random radius.
func (c Circle) RandomChord2(rng *rand.Rand) (Line, error) {
	m := c.RandomRadius(rng).RandomPoint(rng)
	chord, err := c.ChordOfMiddle(m)
	if err != nil {
		return Line{}, fmt.Errorf("random chord 2: %w", err)
	}
	return chord, nil
}

// RandomChord3 returns the chord whose midpoint is a random point of the
// circle's area.
func (c Circle) RandomChord3(rng *rand.Rand) (Line, error) {
	m, err := c.RandomPointFromArea(rng)
	if err != nil {
		return Line{}, fmt.Errorf("random chord 3: %w", err)
	}
	chord, err := c.ChordOfMiddle(m)
	if err != nil {
		return Line{}, fmt.Errorf("random chord 3: %w", err)
	}
	return chord, nil
}

// ChordOfMiddle returns the unique chord whose midpoint is m.
//
// The chord is perpendicular to the radius through m. When m is the center
// every diameter qualifies and the one perpendicular to the vertical radius
// is returned. m must be contained in the circle.
func (c Circle) ChordOfMiddle(m Point) (Line, error) {
	if !c.Contains(m) {
		return Line{}, fmt.Errorf("chord of middle %v: %w", m, ErrOutsideCircle)
	}
	axis := m.Sub(c.center)
	if axis.Length() == 0 {
		axis = c.VerticalRadius().Direction()
	}
	return c.ChordFrom(m, axis.Perp())
}

// ChordFrom returns the chord through p along dir.
//
// The endpoints are the two intersections of the line p + t*dir with the
// circle, ordered left to right. When dir is perpendicular to the radius
// through p, p is the chord's midpoint and the endpoints are symmetric about
// it. A point of the rounding band outside the exact circle is already on
// the perimeter and yields the zero-length chord p-p.
func (c Circle) ChordFrom(p, dir Point) (Line, error) {
	if dir.Length() == 0 {
		return Line{}, fmt.Errorf("chord from %v: %w", p, ErrZeroDirection)
	}
	if !c.Contains(p) {
		return Line{}, fmt.Errorf("chord from %v: %w", p, ErrOutsideCircle)
	}

	u := dir.Normalize()
	w := p.Sub(c.center)
	if w.Length() >= c.radius {
		return NewLine(p, p), nil
	}

	// |w + t*u|^2 = r^2 with |u| = 1.
	half := w.Dot(u)
	disc := half*half - (w.Dot(w) - c.radius*c.radius)
	root := math.Sqrt(math.Max(disc, 0))
	a := p.Add(u.Mul(-half + root))
	b := p.Add(u.Mul(-half - root))
	return NewLine(a, b), nil
}

// ChordFromSlope is ChordFrom with the direction given as a slope.
// InfiniteSlope selects the vertical direction.
func (c Circle) ChordFromSlope(p Point, slope float64) (Line, error) {
	dir := Pt(1, slope)
	if math.IsInf(slope, 0) {
		dir = Pt(0, 1)
	}
	return c.ChordFrom(p, dir)
}
