package model

import (
	"math"
	"testing"
)

func TestBoundingBox_Derived(t *testing.T) {
	b := BoundingBox{X0: 0.1, Y0: 0.2, X1: 0.5, Y1: 0.4, Page: 0}

	if w := b.Width(); math.Abs(w-0.4) > 1e-9 {
		t.Errorf("expected width 0.4, got %v", w)
	}
	if h := b.Height(); math.Abs(h-0.2) > 1e-9 {
		t.Errorf("expected height 0.2, got %v", h)
	}
	if cx := b.CenterX(); math.Abs(cx-0.3) > 1e-9 {
		t.Errorf("expected center x 0.3, got %v", cx)
	}
	if cy := b.CenterY(); math.Abs(cy-0.3) > 1e-9 {
		t.Errorf("expected center y 0.3, got %v", cy)
	}
	if a := b.Area(); math.Abs(a-0.08) > 1e-9 {
		t.Errorf("expected area 0.08, got %v", a)
	}
}

func TestBoundingBox_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b BoundingBox
		want bool
	}{
		{
			name: "overlapping same page",
			a:    BoundingBox{X0: 0.1, Y0: 0.1, X1: 0.5, Y1: 0.5},
			b:    BoundingBox{X0: 0.4, Y0: 0.4, X1: 0.8, Y1: 0.8},
			want: true,
		},
		{
			name: "disjoint same page",
			a:    BoundingBox{X0: 0.1, Y0: 0.1, X1: 0.2, Y1: 0.2},
			b:    BoundingBox{X0: 0.5, Y0: 0.5, X1: 0.8, Y1: 0.8},
			want: false,
		},
		{
			name: "identical boxes on different pages",
			a:    BoundingBox{X0: 0.1, Y0: 0.1, X1: 0.5, Y1: 0.5, Page: 0},
			b:    BoundingBox{X0: 0.1, Y0: 0.1, X1: 0.5, Y1: 0.5, Page: 1},
			want: false,
		},
		{
			name: "touching edges",
			a:    BoundingBox{X0: 0.1, Y0: 0.1, X1: 0.3, Y1: 0.3},
			b:    BoundingBox{X0: 0.3, Y0: 0.1, X1: 0.5, Y1: 0.3},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingBox_ContainsPoint(t *testing.T) {
	b := BoundingBox{X0: 0.2, Y0: 0.2, X1: 0.6, Y1: 0.6}

	if !b.ContainsPoint(0.4, 0.4) {
		t.Error("expected interior point to be contained")
	}
	if !b.ContainsPoint(0.2, 0.2) {
		t.Error("expected corner point to be contained")
	}
	if b.ContainsPoint(0.1, 0.4) {
		t.Error("expected exterior point not to be contained")
	}
}

func TestBoundingBox_Union(t *testing.T) {
	a := BoundingBox{X0: 0.1, Y0: 0.1, X1: 0.3, Y1: 0.2, Page: 2}
	b := BoundingBox{X0: 0.25, Y0: 0.05, X1: 0.5, Y1: 0.15, Page: 2}

	u := a.Union(b)
	want := BoundingBox{X0: 0.1, Y0: 0.05, X1: 0.5, Y1: 0.2, Page: 2}
	if u != want {
		t.Errorf("Union() = %+v, want %+v", u, want)
	}
}

func TestNewBoundingBox_SwapsCoordinates(t *testing.T) {
	b := NewBoundingBox(0.5, 0.4, 0.1, 0.2, 0)
	if b.X0 != 0.1 || b.X1 != 0.5 || b.Y0 != 0.2 || b.Y1 != 0.4 {
		t.Errorf("expected normalized coordinates, got %+v", b)
	}
	if !b.IsValid() {
		t.Error("expected normalized box to be valid")
	}
}

func TestBoundingBox_IsValid(t *testing.T) {
	if (BoundingBox{X0: 0.5, Y0: 0.1, X1: 0.2, Y1: 0.2}).IsValid() {
		t.Error("x0 > x1 should be invalid")
	}
	if (BoundingBox{X0: 0.1, Y0: 0.1, X1: 1.2, Y1: 0.2}).IsValid() {
		t.Error("coordinate above 1 should be invalid")
	}
	if (BoundingBox{X0: 0.1, Y0: 0.1, X1: 0.2, Y1: 0.2, Page: -1}).IsValid() {
		t.Error("negative page should be invalid")
	}
}

func TestPoint_Distance(t *testing.T) {
	p := Point{X: 0, Y: 0}
	q := Point{X: 0.3, Y: 0.4}
	if d := p.Distance(q); math.Abs(d-0.5) > 1e-9 {
		t.Errorf("expected distance 0.5, got %v", d)
	}
}
