// Package layout describes where the wiring runs. A layout is an ordered
// list of wires that together form one closed loop, battery to battery.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iburimskiy/circuitflow/internal/circuit"
)

var (
	ErrNoWires = errors.New("layout has no wires")
	ErrBadWire = errors.New("bad wire")
)

const (
	KindLine  = "line"
	KindCurve = "curve"
)

// Wire is one piece of the loop in layout units.
type Wire struct {
	Kind   string       `json:"kind"`
	Points [][2]float64 `json:"points"`
}

// Component marks where a part sits so it can be drawn.
type Component struct {
	Name string     `json:"name"`
	At   [2]float64 `json:"at"`
	// Angle turns the part about At, in radians, clockwise on screen.
	Angle float64 `json:"angle,omitempty"`
}

// Place maps a point given relative to the part's unrotated centre into layout
// space.
func (c Component) Place(local circuit.Vec) circuit.Vec {
	return local.Rotate(c.Angle).Add(circuit.Vec{X: c.At[0], Y: c.At[1]})
}

type Layout struct {
	Wires      []Wire      `json:"wires"`
	Components []Component `json:"components,omitempty"`
}

// Component names understood by the renderer.
const (
	Battery  = "battery"
	Resistor = "resistor"
	Bulb     = "bulb"
	Switch   = "switch"
)

func vec(p [2]float64) circuit.Vec { return circuit.Vec{X: p[0], Y: p[1]} }

// bowed is a gently curved wire from a to b whose middle is pushed out by
// bow layout units, to the left of the direction of travel.
func bowed(a, b [2]float64, bow float64) Wire {
	d := vec(b).Sub(vec(a)).Unit()
	mid := circuit.Lerp(vec(a), vec(b), 0.5).Add(circuit.Vec{X: d.Y, Y: -d.X}.Scale(bow))
	return Wire{Kind: KindCurve, Points: [][2]float64{a, {mid.X, mid.Y}, b}}
}

func line(a, b [2]float64) Wire {
	return Wire{Kind: KindLine, Points: [][2]float64{a, b}}
}

// Default is the square bench layout: battery at the front, resistor right,
// bulb at the back and the switch on the left. Current leaves the battery's
// positive end and passes through each part in turn.
func Default() Layout {
	var (
		batteryPos  = [2]float64{0.8, 3}
		batteryNeg  = [2]float64{-0.75, 3}
		resistorIn  = [2]float64{3, 0.7}
		resistorOut = [2]float64{3, -0.7}
		bulbIn      = [2]float64{0.2, -3}
		bulbOut     = [2]float64{-0.2, -3}
		switchIn    = [2]float64{-3, -0.5}
		switchOut   = [2]float64{-3, 0.5}
	)
	const bow = 0.3
	return Layout{
		Wires: []Wire{
			bowed(batteryPos, resistorIn, bow),
			line(resistorIn, resistorOut),
			bowed(resistorOut, bulbIn, bow),
			line(bulbIn, bulbOut),
			bowed(bulbOut, switchIn, bow),
			line(switchIn, switchOut),
			bowed(switchOut, batteryNeg, bow),
			line(batteryNeg, batteryPos),
		},
		Components: []Component{
			{Name: Battery, At: [2]float64{0, 3}},
			{Name: Resistor, At: [2]float64{3, 0}},
			{Name: Bulb, At: [2]float64{0, -3}},
			{Name: Switch, At: [2]float64{-3, 0}},
		},
	}
}

// Segments turns the wires into path segments in loop order.
func (y Layout) Segments() ([]circuit.Segment, error) {
	if len(y.Wires) == 0 {
		return nil, ErrNoWires
	}
	segs := make([]circuit.Segment, 0, len(y.Wires))
	for i, w := range y.Wires {
		s, err := w.segment()
		if err != nil {
			return nil, fmt.Errorf("wire %d: %w", i, err)
		}
		segs = append(segs, s)
	}
	return segs, nil
}

func (w Wire) segment() (circuit.Segment, error) {
	switch w.Kind {
	case KindLine, "":
		if len(w.Points) != 2 {
			return nil, fmt.Errorf("%w: line needs 2 points, has %d", ErrBadWire, len(w.Points))
		}
		return circuit.Line{From: vec(w.Points[0]), To: vec(w.Points[1])}, nil
	case KindCurve:
		if len(w.Points) < 2 {
			return nil, fmt.Errorf("%w: curve needs at least 2 points, has %d", ErrBadWire, len(w.Points))
		}
		pts := make([]circuit.Vec, len(w.Points))
		for i, p := range w.Points {
			pts[i] = vec(p)
		}
		return circuit.NewCatmullRom(pts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrBadWire, w.Kind)
	}
}

// Find returns the component with the given name.
func (y Layout) Find(name string) (Component, bool) {
	for _, c := range y.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Gaps returns the distance between the end of each wire and the start of
// the next, wrapping round to the first. A closed loop has all gaps near 0.
func (y Layout) Gaps() []float64 {
	gaps := make([]float64, len(y.Wires))
	for i, w := range y.Wires {
		next := y.Wires[(i+1)%len(y.Wires)]
		if len(w.Points) == 0 || len(next.Points) == 0 {
			continue
		}
		gaps[i] = vec(next.Points[0]).Sub(vec(w.Points[len(w.Points)-1])).Len()
	}
	return gaps
}

func Decode(r io.Reader) (Layout, error) {
	var y Layout
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&y); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if _, err := y.Segments(); err != nil {
		return Layout{}, err
	}
	return y, nil
}

// Load reads a JSON layout file.
func Load(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()
	y, err := Decode(f)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return y, nil
}

// Save writes y to path as indented JSON.
func Save(path string, y Layout) error {
	b, err := json.MarshalIndent(y, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
