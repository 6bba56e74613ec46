package circuit

import "math"

// Vec is a point or direction in layout space (logical pixels, y down).
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Rotate turns v by a radians. With y down, positive angles turn clockwise on
// screen.
func (v Vec) Rotate(a float64) Vec {
	sin, cos := math.Sincos(a)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Unit returns v scaled to length 1, or the zero vector if v has no length.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(1 / l)
}

// Lerp interpolates between a and b.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// wrap01 folds v into [0,1). Negative values wrap from the top.
func wrap01(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		// Floor of values a hair under an integer can leave exactly 1.
		return 0
	}
	return v
}
