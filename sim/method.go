package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/gogpu/bertrand"
)

// ErrUnknownMethod is returned for a chord method outside Methods.
var ErrUnknownMethod = errors.New("sim: unknown chord method")

// Method selects one of the three classical ways of drawing a random chord.
type Method int

const (
	// Endpoints joins two random perimeter points.
	Endpoints Method = iota + 1
	// RadialPoint uses a random point of a random radius as the midpoint.
	RadialPoint
	// AreaPoint uses a random point of the disk as the midpoint.
	AreaPoint
)

// Methods lists every chord method in numbering order.
var Methods = []Method{Endpoints, RadialPoint, AreaPoint}

func (m Method) String() string {
	switch m {
	case Endpoints:
		return "endpoints"
	case RadialPoint:
		return "radial"
	case AreaPoint:
		return "area"
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m is one of Methods.
func (m Method) Valid() bool {
	return m >= Endpoints && m <= AreaPoint
}

// Expected returns the classical probability that a chord drawn with m is
// longer than the side of the inscribed equilateral triangle.
func (m Method) Expected() float64 {
	switch m {
	case Endpoints:
		return 1.0 / 3
	case RadialPoint:
		return 1.0 / 2
	case AreaPoint:
		return 1.0 / 4
	}
	return 0
}

// Chord draws one chord of c with method m.
func (m Method) Chord(c bertrand.Circle, rng *rand.Rand) (bertrand.Line, error) {
	switch m {
	case Endpoints:
		return c.RandomChord1(rng)
	case RadialPoint:
		return c.RandomChord2(rng)
	case AreaPoint:
		return c.RandomChord3(rng)
	}
	return bertrand.Line{}, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
}

// ParseMethod parses a method number (1, 2, 3) or name (endpoints, radial,
// area). Matching is case-insensitive.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "endpoints":
		return Endpoints, nil
	case "2", "radial":
		return RadialPoint, nil
	case "3", "area":
		return AreaPoint, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}
