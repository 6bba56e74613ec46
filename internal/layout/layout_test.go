package layout

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/iburimskiy/circuitflow/internal/circuit"
)

func TestDefaultIsClosedLoop(t *testing.T) {
	y := Default()
	for i, g := range y.Gaps() {
		if g > 1e-9 {
			t.Errorf("gap after wire %d is %v", i, g)
		}
	}
	segs, err := y.Segments()
	if err != nil {
		t.Fatalf("Segments: %s", err)
	}
	if len(segs) != 8 {
		t.Fatalf("%d segments, want 8", len(segs))
	}
	n := circuit.NewPathNetwork(segs...)
	start, _ := n.PointAt(0)
	end, _ := n.PointAt(1)
	if d := end.Sub(start).Len(); d > 1e-6 {
		t.Fatalf("route ends %v away from its start", d)
	}
}

func TestDefaultComponents(t *testing.T) {
	y := Default()
	for _, name := range []string{Battery, Resistor, Bulb, Switch} {
		if _, ok := y.Find(name); !ok {
			t.Errorf("missing %s", name)
		}
	}
	if _, ok := y.Find("capacitor"); ok {
		t.Error("found a part that is not there")
	}
}

func TestBowedWireIsLonger(t *testing.T) {
	w := bowed([2]float64{0, 0}, [2]float64{4, 0}, 0.5)
	s, err := w.segment()
	if err != nil {
		t.Fatal(err)
	}
	if s.Length() <= 4 {
		t.Fatalf("bowed wire length %v not longer than chord", s.Length())
	}
	mid := s.PointAt(0.5)
	// Travelling along +x, left is -y.
	if mid.Y >= 0 {
		t.Fatalf("bow went the wrong way: %v", mid)
	}
}

func TestDecode(t *testing.T) {
	const src = `{
		"wires": [
			{"kind": "line", "points": [[0, 0], [2, 0]]},
			{"kind": "curve", "points": [[2, 0], [2, 1], [0, 2]]},
			{"points": [[0, 2], [0, 0]]}
		],
		"components": [{"name": "bulb", "at": [1, 1], "angle": 1.5}]
	}`
	y, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}
	want := Component{Name: Bulb, At: [2]float64{1, 1}, Angle: 1.5}
	if diff := cmp.Diff([]Component{want}, y.Components); diff != "" {
		t.Fatalf("components (-want +got):\n%s", diff)
	}
	segs, err := y.Segments()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := segs[1].(*circuit.CatmullRom); !ok {
		t.Fatalf("wire 1 is %T, want curve", segs[1])
	}
	if _, ok := segs[2].(circuit.Line); !ok {
		t.Fatalf("wire 2 is %T, want line", segs[2])
	}
}

func TestComponentPlace(t *testing.T) {
	cases := map[string]struct {
		c     Component
		local circuit.Vec
		want  circuit.Vec
	}{
		"unrotated": {Component{At: [2]float64{-3, 0}}, circuit.Vec{Y: 0.5}, circuit.Vec{X: -3, Y: 0.5}},
		"quarter":   {Component{At: [2]float64{-3, 0}, Angle: math.Pi / 2}, circuit.Vec{Y: 0.5}, circuit.Vec{X: -3.5, Y: 0}},
		"half":      {Component{At: [2]float64{1, 2}, Angle: math.Pi}, circuit.Vec{X: 1, Y: -1}, circuit.Vec{X: 0, Y: 3}},
		"centre":    {Component{At: [2]float64{1, 2}, Angle: 0.7}, circuit.Vec{}, circuit.Vec{X: 1, Y: 2}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.c.Place(tc.local)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Fatalf("Place (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]struct {
		src  string
		want error
	}{
		"empty":      {`{"wires": []}`, ErrNoWires},
		"short line": {`{"wires": [{"kind": "line", "points": [[0, 0]]}]}`, ErrBadWire},
		"kind":       {`{"wires": [{"kind": "zigzag", "points": [[0, 0], [1, 1]]}]}`, ErrBadWire},
		"one point":  {`{"wires": [{"kind": "curve", "points": [[0, 0]]}]}`, ErrBadWire},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(c.src))
			if !errors.Is(err, c.want) {
				t.Fatalf("Decode error %v, want %v", err, c.want)
			}
		})
	}
	if _, err := Decode(strings.NewReader(`{"wires": [], "extra": 1}`)); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.json")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save: %s", err)
	}
	y, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if diff := cmp.Diff(Default(), y); diff != "" {
		t.Fatalf("layout changed on disk (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}
