package bertrand

import "errors"

// Sentinel errors returned by the geometry primitives.
// Callers should match them with errors.Is.
var (
	// ErrInvalidRadius is returned when a circle is built with a radius
	// that is not strictly positive and finite.
	ErrInvalidRadius = errors.New("bertrand: radius must be strictly positive")

	// ErrNoPoints is returned by extremal point queries on an empty list.
	ErrNoPoints = errors.New("bertrand: at least one point is required")

	// ErrOutsideCircle is returned when a chord is requested through a point
	// that the circle does not contain.
	ErrOutsideCircle = errors.New("bertrand: point is not inside the circle")

	// ErrNotOnPerimeter is returned when a point expected on the perimeter
	// is not within rounding tolerance of it.
	ErrNotOnPerimeter = errors.New("bertrand: point is not on the perimeter")

	// ErrZeroDirection is returned when a chord direction has zero length.
	ErrZeroDirection = errors.New("bertrand: direction must be non-zero")

	// ErrRetryLimit is returned when a resampling loop exceeds MaxRetries.
	ErrRetryLimit = errors.New("bertrand: sampling retry limit exceeded")
)
