package circuit

import (
	"math"
	"sort"
)

// Segment is one piece of wiring. u runs from 0 at the start to 1 at the end
// and is proportional to distance travelled along the segment.
type Segment interface {
	Length() float64
	PointAt(u float64) Vec
	TangentAt(u float64) Vec
}

// Line is a straight wire.
type Line struct {
	From, To Vec
}

func (l Line) Length() float64 { return l.To.Sub(l.From).Len() }

func (l Line) PointAt(u float64) Vec { return Lerp(l.From, l.To, u) }

func (l Line) TangentAt(float64) Vec { return l.To.Sub(l.From).Unit() }

// curveDivisions is the number of samples used for the arc-length table.
const curveDivisions = 200

// CatmullRom is a smooth open curve passing through every control point. Knots
// are spaced centripetally (by the square root of the chord length), which
// keeps the curve from looping or overshooting where control points bunch up.
// PointAt is arc-length parameterized using a sampled length table, so equal
// steps in u cover equal distances along the wire.
type CatmullRom struct {
	points []Vec
	// lengths[i] is the arc length from t=0 to t=i/curveDivisions.
	lengths []float64
}

// NewCatmullRom builds a curve through points. The slice is copied and repeated
// consecutive points are dropped.
func NewCatmullRom(points ...Vec) *CatmullRom {
	c := &CatmullRom{points: make([]Vec, 0, len(points))}
	for i, p := range points {
		if i > 0 && p == points[i-1] {
			continue
		}
		c.points = append(c.points, p)
	}
	c.lengths = make([]float64, curveDivisions+1)
	prev := c.at(0)
	for i := 1; i <= curveDivisions; i++ {
		p := c.at(float64(i) / curveDivisions)
		c.lengths[i] = c.lengths[i-1] + p.Sub(prev).Len()
		prev = p
	}
	return c
}

func (c *CatmullRom) Length() float64 { return c.lengths[curveDivisions] }

func (c *CatmullRom) PointAt(u float64) Vec { return c.at(c.uToT(u)) }

func (c *CatmullRom) TangentAt(u float64) Vec {
	const delta = 1e-4
	u1, u2 := u-delta, u+delta
	if u1 < 0 {
		u1 = 0
	}
	if u2 > 1 {
		u2 = 1
	}
	return c.PointAt(u2).Sub(c.PointAt(u1)).Unit()
}

// uToT maps an arc-length fraction to the curve's own parameter.
func (c *CatmullRom) uToT(u float64) float64 {
	u = Clamp01(u)
	total := c.Length()
	if total == 0 {
		return u
	}
	target := u * total
	i := sort.SearchFloat64s(c.lengths, target)
	if i == 0 {
		return 0
	}
	if i > curveDivisions {
		return 1
	}
	before, after := c.lengths[i-1], c.lengths[i]
	frac := 0.0
	if after > before {
		frac = (target - before) / (after - before)
	}
	return (float64(i-1) + frac) / curveDivisions
}

// at evaluates the curve at t in [0,1]; each span between neighbouring
// control points takes an equal share of t. The end tangents come from points
// mirrored across the first and last control points.
func (c *CatmullRom) at(t float64) Vec {
	n := len(c.points)
	switch n {
	case 0:
		return Vec{}
	case 1:
		return c.points[0]
	}
	p := float64(n-1) * Clamp01(t)
	seg := int(p)
	w := p - float64(seg)
	if seg >= n-1 {
		seg = n - 2
		w = 1
	}
	p1, p2 := c.points[seg], c.points[seg+1]
	var p0, p3 Vec
	if seg > 0 {
		p0 = c.points[seg-1]
	} else {
		p0 = p1.Scale(2).Sub(p2)
	}
	if seg+2 < n {
		p3 = c.points[seg+2]
	} else {
		p3 = p2.Scale(2).Sub(p1)
	}

	dt0, dt1, dt2 := knot(p0, p1), knot(p1, p2), knot(p2, p3)
	if dt1 < minKnot {
		dt1 = 1
	}
	if dt0 < minKnot {
		dt0 = dt1
	}
	if dt2 < minKnot {
		dt2 = dt1
	}
	return Vec{
		X: hermite(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		Y: hermite(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
	}
}

const minKnot = 1e-4

// knot is the centripetal parameter step between a and b.
func knot(a, b Vec) float64 { return math.Sqrt(b.Sub(a).Len()) }

// hermite evaluates one coordinate of the span x1..x2 at w, with tangents
// from the non-uniform Catmull-Rom formula rescaled to the span.
func hermite(x0, x1, x2, x3, dt0, dt1, dt2, w float64) float64 {
	m1 := ((x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1) * dt1
	m2 := ((x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2) * dt1
	c2 := -3*x1 + 3*x2 - 2*m1 - m2
	c3 := 2*x1 - 2*x2 + m1 + m2
	return x1 + w*(m1+w*(c2+w*c3))
}
