package model

import "math"

// Point represents a 2D point in normalized page coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BoundingBox is an axis-aligned rectangle in normalized [0,1] page
// coordinates. X0/Y0 is the top-left corner, X1/Y1 the bottom-right.
// Page is the 0-indexed page the box lives on; boxes on different pages
// never overlap or contain each other's points.
type BoundingBox struct {
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	Page int     `json:"page"`
}

// NewBoundingBox creates a bounding box, swapping coordinates if needed so
// that the invariant x0 <= x1, y0 <= y1 holds.
func NewBoundingBox(x0, y0, x1, y1 float64, page int) BoundingBox {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return BoundingBox{X0: x0, Y0: y0, X1: x1, Y1: y1, Page: page}
}

// Width returns the width of the box.
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the box.
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// CenterX returns the X coordinate of the center.
func (b BoundingBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// CenterY returns the Y coordinate of the center.
func (b BoundingBox) CenterY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// Center returns the center point.
func (b BoundingBox) Center() Point {
	return Point{X: b.CenterX(), Y: b.CenterY()}
}

// Area returns the area of the box.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// Overlaps reports whether the two boxes intersect. Boxes on different
// pages never overlap.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	if b.Page != other.Page {
		return false
	}
	return !(b.X1 < other.X0 || b.X0 > other.X1 ||
		b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// ContainsPoint reports whether a point on the same page is inside the box.
func (b BoundingBox) ContainsPoint(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Union returns the smallest box covering both boxes. Both boxes must be on
// the same page; the result carries b's page.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		X0:   math.Min(b.X0, other.X0),
		Y0:   math.Min(b.Y0, other.Y0),
		X1:   math.Max(b.X1, other.X1),
		Y1:   math.Max(b.Y1, other.Y1),
		Page: b.Page,
	}
}

// IsValid reports whether the box satisfies the coordinate invariants:
// x0 <= x1, y0 <= y1, all coordinates within [0,1], page non-negative.
func (b BoundingBox) IsValid() bool {
	if b.X0 > b.X1 || b.Y0 > b.Y1 || b.Page < 0 {
		return false
	}
	for _, v := range [4]float64{b.X0, b.Y0, b.X1, b.Y1} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
