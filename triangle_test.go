package bertrand

import (
	"math"
	"testing"
)

func TestTriangle(t *testing.T) {
	tri := NewTriangle(Pt(0, 0).Named("A"), Pt(3, 0).Named("B"), Pt(0, 4).Named("C"))
	if tri.Name != "ABC" {
		t.Errorf("Name = %q, want ABC", tri.Name)
	}
	if got := tri.SideLen(); got != 3 {
		t.Errorf("SideLen() = %v, want 3", got)
	}
	if got := tri.Perimeter(); math.Abs(got-12) > 1e-12 {
		t.Errorf("Perimeter() = %v, want 12", got)
	}
	sides := tri.Sides()
	want := []float64{3, 5, 4}
	for i, s := range sides {
		if math.Abs(s.Length()-want[i]) > 1e-12 {
			t.Errorf("side %d = %v, want %v", i, s.Length(), want[i])
		}
	}
	if got := tri.String(); got != "ABC : A(0, 0) B(3, 0) C(0, 4)" {
		t.Errorf("String() = %q", got)
	}
}

func TestTriangle_Collinear(t *testing.T) {
	tri := NewTriangle(Pt(0, 0), Pt(1, 1), Pt(2, 2))
	if math.Abs(tri.Perimeter()-2*2*math.Sqrt2) > 1e-12 {
		t.Errorf("Perimeter() = %v", tri.Perimeter())
	}
}
