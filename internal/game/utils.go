package game

import (
	"image/color"
	"math"

	"github.com/iburimskiy/circuitflow/internal/circuit"
	"github.com/iburimskiy/circuitflow/internal/config"
)

// hsv is an opaque colour from hue in degrees and saturation and value in
// [0,1].
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	ch := func(n float64) uint8 {
		k := math.Mod(n+h/60, 6)
		return uint8(math.Round(255 * v * (1 - s*math.Max(0, math.Min(1, math.Min(k, 4-k))))))
	}
	return color.RGBA{R: ch(5), G: ch(3), B: ch(1), A: 255}
}

// fade scales a premultiplied colour to opacity a.
func fade(c color.RGBA, a float64) color.RGBA {
	a = circuit.Clamp01(a)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// toScreen maps layout units to window pixels.
func toScreen(v circuit.Vec) (float32, float32) {
	return float32(v.X*config.LayoutScale + config.LayoutOriginX),
		float32(v.Y*config.LayoutScale + config.LayoutOriginY)
}

// polyline samples a segment into points for drawing.
func polyline(s circuit.Segment, steps int) []circuit.Vec {
	if _, ok := s.(circuit.Line); ok {
		steps = 1
	}
	pts := make([]circuit.Vec, steps+1)
	for i := range pts {
		pts[i] = s.PointAt(float64(i) / float64(steps))
	}
	return pts
}
