package bertrand

// Triangle is a triangle given by its three vertices.
// Collinear vertices are accepted.
type Triangle struct {
	A, B, C Point
	Name    string
}

// NewTriangle returns the triangle abc. The name defaults to the
// concatenation of the vertex labels.
func NewTriangle(a, b, c Point) Triangle {
	return Triangle{A: a, B: b, C: c, Name: a.Name + b.Name + c.Name}
}

// SideLen returns the length of side AB. For the equilateral triangles built
// by Circle it is the length of every side.
func (t Triangle) SideLen() float64 {
	return t.A.Distance(t.B)
}

// Sides returns the three sides AB, BC and CA.
func (t Triangle) Sides() [3]Line {
	return [3]Line{NewLine(t.A, t.B), NewLine(t.B, t.C), NewLine(t.C, t.A)}
}

// Perimeter returns the sum of the side lengths.
func (t Triangle) Perimeter() float64 {
	return t.A.Distance(t.B) + t.B.Distance(t.C) + t.C.Distance(t.A)
}

func (t Triangle) String() string {
	return t.Name + " : " + t.A.String() + " " + t.B.String() + " " + t.C.String()
}
