package game

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/circuitflow/internal/audio"
	"github.com/iburimskiy/circuitflow/internal/circuit"
	"github.com/iburimskiy/circuitflow/internal/config"
	"github.com/iburimskiy/circuitflow/internal/layout"
)

func newTestGame(t *testing.T, y layout.Layout) *Game {
	t.Helper()
	log := zaptest.NewLogger(t).Sugar()
	player, err := audio.NewPlayer(audio.Options{Mute: true}, log)
	if err != nil {
		t.Fatalf("NewPlayer: %s", err)
	}
	t.Cleanup(player.Close)
	g, err := New(config.Default(), y, player, log)
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	return g
}

func withSwitchAngle(a float64) layout.Layout {
	y := layout.Default()
	for i := range y.Components {
		if y.Components[i].Name == layout.Switch {
			y.Components[i].Angle = a
		}
	}
	return y
}

func TestHandleFollowsSwitchAngle(t *testing.T) {
	cases := map[string]struct {
		angle float64
		want  circuit.Vec
	}{
		"upright": {0, circuit.Vec{X: -3, Y: leverPivotOffset - leverLength}},
		"quarter": {math.Pi / 2, circuit.Vec{X: -3 + leverLength - leverPivotOffset, Y: 0}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g := newTestGame(t, withSwitchAngle(tc.angle))
			g.lever.angle = 0
			if diff := cmp.Diff(tc.want, g.handlePos(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Fatalf("handle (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleWithoutSwitch(t *testing.T) {
	y := layout.Default()
	y.Components = nil
	g := newTestGame(t, y)
	if p := g.handlePos(); !math.IsInf(p.X, 1) {
		t.Fatalf("handle at %v with no switch on the bench", p)
	}
}

func TestToggleStartsHum(t *testing.T) {
	g := newTestGame(t, layout.Default())
	g.state.Toggle()
	if !g.player.Humming() {
		t.Fatal("no hum after closing the circuit")
	}
	g.state.Toggle()
	if g.player.Humming() {
		t.Fatal("hum after opening the circuit")
	}
}

func TestHSV(t *testing.T) {
	cases := map[string]struct {
		h, s, v float64
		want    color.RGBA
	}{
		"red":     {0, 1, 1, color.RGBA{R: 255, A: 255}},
		"green":   {120, 1, 1, color.RGBA{G: 255, A: 255}},
		"blue":    {240, 1, 1, color.RGBA{B: 255, A: 255}},
		"magenta": {-60, 1, 1, color.RGBA{R: 255, B: 255, A: 255}},
		"grey":    {77, 0, 0.5, color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	}
	for name, tc := range cases {
		if got := hsv(tc.h, tc.s, tc.v); got != tc.want {
			t.Errorf("%s: hsv(%v, %v, %v) = %v, want %v", name, tc.h, tc.s, tc.v, got, tc.want)
		}
	}
}

func TestFade(t *testing.T) {
	got := fade(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)
	if want := (color.RGBA{R: 100, G: 50, B: 25, A: 127}); got != want {
		t.Fatalf("fade = %v, want %v", got, want)
	}
	if got := fade(color.RGBA{R: 9, A: 9}, 2); got != (color.RGBA{R: 9, A: 9}) {
		t.Fatalf("fade above 1 = %v", got)
	}
}
