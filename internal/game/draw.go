package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/circuitflow/internal/circuit"
	"github.com/iburimskiy/circuitflow/internal/config"
	"github.com/iburimskiy/circuitflow/internal/layout"
)

var (
	backgroundColor = color.RGBA{R: 0x28, G: 0x2c, B: 0x34, A: 255}
	benchColor      = color.RGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255}
	wireColor       = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	metalColor      = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 255}
	copperColor     = color.RGBA{R: 0xb8, G: 0x73, B: 0x33, A: 255}
	plasticColor    = color.RGBA{R: 0x4a, G: 0x3b, B: 0x31, A: 255}
	handleColor     = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 255}
	electronColor   = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 255}
)

// Geometry of the switch relative to its layout position, in layout units.
const (
	leverPivotOffset = 0.5 // pivot sits over the contact towards the battery
	leverLength      = 0.9
	leverLift        = 0.45 // sideways shift at full lift, fakes height from above
)

// handlePos is where the lever handle is drawn, in layout units.
func (g *Game) handlePos() circuit.Vec {
	sw, ok := g.layout.Find(layout.Switch)
	if !ok {
		return circuit.Vec{X: math.Inf(1), Y: math.Inf(1)}
	}
	a := g.lever.angle
	return sw.Place(circuit.Vec{X: -math.Sin(a) * leverLift, Y: leverPivotOffset - math.Cos(a)*leverLength})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawBench(screen)
	g.drawWires(screen)
	g.drawComponents(screen)
	g.drawParticles(screen)
	g.drawMeter(screen)

	status := fmt.Sprintf("Circuit %s | speed %.2f | restart %s", g.state, g.flow.Speed(), g.flow.Reseed())
	if g.state.On() {
		status += " | closed " + g.now().Sub(g.closedAt).Truncate(time.Second).String()
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen, "Click lever or Space: toggle   +/-: speed   R: restart policy   L/S: load/save layout   Esc/Q: quit", 12, config.WindowHeight-20)
}

func (g *Game) drawBench(screen *ebiten.Image) {
	x, y := toScreen(circuit.Vec{X: -5, Y: -4.2})
	vector.DrawFilledRect(screen, x, y, 10*config.LayoutScale, 8.4*config.LayoutScale, benchColor, false)
}

func (g *Game) drawWires(screen *ebiten.Image) {
	for _, pts := range g.wires {
		for i := 1; i < len(pts); i++ {
			x0, y0 := toScreen(pts[i-1])
			x1, y1 := toScreen(pts[i])
			vector.StrokeLine(screen, x0, y0, x1, y1, config.WireWidth, wireColor, true)
		}
	}
}

func (g *Game) drawComponents(screen *ebiten.Image) {
	for _, c := range g.layout.Components {
		switch c.Name {
		case layout.Battery:
			g.drawBattery(screen, c)
		case layout.Resistor:
			g.drawResistor(screen, c)
		case layout.Bulb:
			g.drawBulb(screen, c)
		case layout.Switch:
			g.drawSwitch(screen, c)
		}
	}
}

// bar draws a filled rectangle of the given width whose centre line runs
// from a to b, both relative to the part.
func bar(screen *ebiten.Image, c layout.Component, a, b circuit.Vec, width float64, clr color.Color) {
	x0, y0 := toScreen(c.Place(a))
	x1, y1 := toScreen(c.Place(b))
	vector.StrokeLine(screen, x0, y0, x1, y1, float32(width*config.LayoutScale), clr, true)
}

// label prints text centred on a point relative to the part.
func label(screen *ebiten.Image, c layout.Component, at circuit.Vec, text string) {
	x, y := toScreen(c.Place(at))
	ebitenutil.DebugPrintAt(screen, text, int(x)-3, int(y)-8)
}

func (g *Game) drawBattery(screen *ebiten.Image, c layout.Component) {
	bar(screen, c, circuit.Vec{X: -0.75}, circuit.Vec{X: 0.75}, 0.8, color.RGBA{R: 0xcc, A: 255})
	bar(screen, c, circuit.Vec{X: -0.1}, circuit.Vec{X: 0.5}, 0.8, color.RGBA{R: 0xff, G: 0xdd, A: 255})
	// Positive terminal on the right.
	bar(screen, c, circuit.Vec{X: 0.75}, circuit.Vec{X: 0.85}, 0.3, metalColor)
	label(screen, c, circuit.Vec{X: 0.95, Y: -0.6}, "+")
	label(screen, c, circuit.Vec{X: -0.9, Y: -0.6}, "-")
}

var resistorBands = []color.RGBA{
	{R: 0x00, G: 0x73, B: 0xcf, A: 255},
	{R: 0xaa, G: 0xaa, B: 0xaa, A: 255},
	{R: 0x8b, G: 0x45, B: 0x13, A: 255},
	{R: 0xff, G: 0xd7, B: 0x00, A: 255},
}

func (g *Game) drawResistor(screen *ebiten.Image, c layout.Component) {
	bar(screen, c, circuit.Vec{Y: -0.3}, circuit.Vec{Y: 0.3}, 0.3, color.RGBA{R: 0xd2, G: 0xb4, B: 0x8c, A: 255})
	for i, clr := range resistorBands {
		y := -0.22 + 0.12*float64(i)
		bar(screen, c, circuit.Vec{Y: y}, circuit.Vec{Y: y + 0.05}, 0.3, clr)
	}
}

func (g *Game) drawBulb(screen *ebiten.Image, c layout.Component) {
	x, y := toScreen(c.Place(circuit.Vec{}))
	glow := g.bulb.glow()
	if glow.A > 0 {
		for i := 4; i >= 1; i-- {
			r := float32(config.GlowRadius) * float32(i) / 4
			vector.DrawFilledCircle(screen, x, y, r, fade(glow, 1/float64(i)), true)
		}
	}
	vector.DrawFilledCircle(screen, x, y, 0.4*config.LayoutScale, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0x40}, true)
	vector.StrokeCircle(screen, x, y, 0.4*config.LayoutScale, 1.5, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}, true)
	vector.StrokeCircle(screen, x, y, 0.08*config.LayoutScale, 2, g.bulb.filament(), true)
}

func (g *Game) drawSwitch(screen *ebiten.Image, c layout.Component) {
	const s = config.LayoutScale
	bar(screen, c, circuit.Vec{Y: -0.75}, circuit.Vec{Y: 0.75}, 0.8, plasticColor)
	for _, dy := range []float64{-0.5, 0.5} {
		bar(screen, c, circuit.Vec{Y: dy - 0.1}, circuit.Vec{Y: dy + 0.1}, 0.3, copperColor)
	}
	px, py := toScreen(c.Place(circuit.Vec{Y: leverPivotOffset}))
	hx, hy := toScreen(g.handlePos())
	vector.StrokeLine(screen, px, py, hx, hy, 0.15*s, metalColor, true)
	handle := handleColor
	if g.handleHovered {
		handle = color.RGBA{R: 0xff, G: 0x60, B: 0x60, A: 255}
	}
	vector.DrawFilledCircle(screen, hx, hy, 0.12*s, handle, true)
}

func (g *Game) drawParticles(screen *ebiten.Image) {
	for i, p := range g.flow.Particles() {
		if !p.Visible {
			continue
		}
		x, y := toScreen(p.Pos)
		// Slight per-particle shimmer around cyan.
		hue := 180 + 20*math.Sin(g.colorPhase*10+float64(i))
		vector.DrawFilledCircle(screen, x, y, config.ParticleRadius+2, fade(hsv(hue, 1, 1), 0.25), true)
		vector.DrawFilledCircle(screen, x, y, config.ParticleRadius, electronColor, true)
	}
}

// drawMeter shows the hum level as a small bar in the corner.
func (g *Game) drawMeter(screen *ebiten.Image) {
	const (
		barX, barY = config.WindowWidth - 140, 10
		barW, barH = 120, 12
	)
	vector.DrawFilledRect(screen, barX, barY, barW, barH, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	fill := circuit.Clamp01(g.level * 10)
	if fill > 0 {
		vector.DrawFilledRect(screen, barX, barY, float32(fill*barW), barH, fade(hsv(120-120*fill, 0.8, 0.9), 0.85), false)
	}
	vector.StrokeRect(screen, barX, barY, barW, barH, 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "hum", barX-28, barY-2)
}
