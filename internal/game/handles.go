package game

import (
	"image/color"

	"github.com/iburimskiy/circuitflow/internal/circuit"
)

// lever is the switch arm. Its angle is driven by the animator.
type lever struct {
	angle float64
}

func (l *lever) Value() float64     { return l.angle }
func (l *lever) SetValue(v float64) { l.angle = v }

// bulb holds what the renderer needs to draw the filament and its glow.
type bulb struct {
	appearance circuit.Appearance
}

func (b *bulb) SetAppearance(a circuit.Appearance) { b.appearance = a }

// filament is the colour of the filament itself: the base colour with the
// emissive colour added on top.
func (b *bulb) filament() color.RGBA {
	a := b.appearance
	add := func(base, em uint8) uint8 {
		v := float64(base) + float64(em)*a.EmissiveIntensity
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return color.RGBA{
		R: add(a.Base.R, a.Emissive.R),
		G: add(a.Base.G, a.Emissive.G),
		B: add(a.Base.B, a.Emissive.B),
		A: 255,
	}
}

// glow is the halo colour for the point light, transparent when off.
func (b *bulb) glow() color.RGBA {
	a := b.appearance
	alpha := circuit.Clamp01(a.LightIntensity/2) * 160
	return color.RGBA{
		R: uint8(float64(a.Emissive.R) * alpha / 255),
		G: uint8(float64(a.Emissive.G) * alpha / 255),
		B: uint8(float64(a.Emissive.B) * alpha / 255),
		A: uint8(alpha),
	}
}
