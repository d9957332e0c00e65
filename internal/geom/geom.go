// Package geom provides the float geometry used for runner collisions.
// All tests use the normalized ellipse form and count the boundary as a hit.
package geom

import "math"

// Vec2 is a point or offset in world pixels.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ClosestPoint returns the point of r nearest to p.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, r.X, r.Right()),
		Y: clamp(p.Y, r.Y, r.Bottom()),
	}
}

// Ellipse is an axis-aligned ellipse given by centre and semi-axes.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
}

// Center returns the ellipse centre.
func (e Ellipse) Center() Vec2 {
	return Vec2{X: e.CX, Y: e.CY}
}

// PlayerEllipse derives the player's collision ellipse from its box:
// centred on the box, rx = 0.35*w and ry = 0.45*h.
func PlayerEllipse(x, y, w, h float64) Ellipse {
	return ScaledEllipse(Rect{X: x, Y: y, W: w, H: h}, 0.35, 0.45)
}

// ScaledEllipse returns an ellipse centred on r with semi-axes sx*W and sy*H.
func ScaledEllipse(r Rect, sx, sy float64) Ellipse {
	return Ellipse{
		CX: r.X + r.W/2,
		CY: r.Y + r.H/2,
		RX: r.W * sx,
		RY: r.H * sy,
	}
}

// NormDistSq returns (dx/RX)^2 + (dy/RY)^2 for an offset from the centre.
// Values <= 1 are inside or on the ellipse.
func (e Ellipse) NormDistSq(dx, dy float64) float64 {
	return axisTerm(dx, e.RX) + axisTerm(dy, e.RY)
}

// Contains reports whether p lies inside or on the ellipse.
func (e Ellipse) Contains(p Vec2) bool {
	return e.NormDistSq(p.X-e.CX, p.Y-e.CY) <= 1
}

// EllipseIntersectsRect clamps the ellipse centre onto the rectangle and
// tests whether that closest point lies within the ellipse.
func EllipseIntersectsRect(e Ellipse, r Rect) bool {
	return e.Contains(r.ClosestPoint(e.Center()))
}

// EllipseIntersectsEllipse tests the offset between centres against an
// ellipse whose semi-axes are the summed semi-axes of a and b.
func EllipseIntersectsEllipse(a, b Ellipse) bool {
	combined := Ellipse{RX: a.RX + b.RX, RY: a.RY + b.RY}
	return combined.NormDistSq(b.CX-a.CX, b.CY-a.CY) <= 1
}

// axisTerm returns (d/r)^2, treating a zero radius as a point on that axis.
func axisTerm(d, r float64) float64 {
	if r == 0 {
		if d == 0 {
			return 0
		}
		return math.Inf(1)
	}
	n := d / r
	return n * n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
