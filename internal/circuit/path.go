package circuit

import "sort"

// PathNetwork is a closed route made of segments walked in order. It keeps a
// cumulative length table so a fraction of the whole route can be mapped back
// to a segment and a position on it.
type PathNetwork struct {
	segments []Segment
	lengths  []float64
	// cumulative[i] is the distance from the route start to the start of
	// segment i; cumulative[len(segments)] is the total length.
	cumulative []float64
}

func NewPathNetwork(segments ...Segment) *PathNetwork {
	n := &PathNetwork{}
	n.SetSegments(segments)
	return n
}

// SetSegments replaces the route. An empty list is allowed.
func (n *PathNetwork) SetSegments(segments []Segment) {
	n.segments = append(n.segments[:0:0], segments...)
	n.lengths = make([]float64, len(segments))
	n.cumulative = make([]float64, len(segments)+1)
	for i, s := range n.segments {
		l := s.Length()
		if l < 0 {
			l = 0
		}
		n.lengths[i] = l
		n.cumulative[i+1] = n.cumulative[i] + l
	}
}

func (n *PathNetwork) Len() int { return len(n.segments) }

func (n *PathNetwork) Segment(i int) Segment { return n.segments[i] }

func (n *PathNetwork) SegmentLength(i int) float64 { return n.lengths[i] }

func (n *PathNetwork) TotalLength() float64 { return n.cumulative[len(n.segments)] }

// Cumulative returns a copy of the cumulative length table.
func (n *PathNetwork) Cumulative() []float64 {
	return append([]float64(nil), n.cumulative...)
}

// Locate maps a fraction p of the whole route to a segment index and the
// fraction u along that segment. Each segment owns [cumulative[i],
// cumulative[i+1]); the last one also owns its top end so p at or just past 1
// lands on the end of the route. Zero length segments resolve to u = 0.
// An empty route returns index -1.
func (n *PathNetwork) Locate(p float64) (index int, u float64) {
	count := len(n.segments)
	if count == 0 {
		return -1, 0
	}
	abs := p * n.TotalLength()
	index = sort.Search(count, func(i int) bool { return n.cumulative[i+1] > abs })
	if index == count {
		index = count - 1
	}
	if n.lengths[index] == 0 {
		return index, 0
	}
	return index, (abs - n.cumulative[index]) / n.lengths[index]
}

// PointAt returns the position a fraction p along the route. ok is false for
// a route with no length.
func (n *PathNetwork) PointAt(p float64) (pos Vec, ok bool) {
	if n.TotalLength() == 0 {
		return Vec{}, false
	}
	i, u := n.Locate(p)
	return n.segments[i].PointAt(Clamp01(u)), true
}
