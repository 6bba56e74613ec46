// Package game runs the circuit on screen: it owns the frame loop, reads the
// mouse and keyboard, and draws the bench from above.
package game

import (
	"errors"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/circuitflow/internal/audio"
	"github.com/iburimskiy/circuitflow/internal/circuit"
	"github.com/iburimskiy/circuitflow/internal/config"
	"github.com/iburimskiy/circuitflow/internal/layout"
	"go.uber.org/zap"
)

type Game struct {
	// circuit
	anim    *circuit.Animator
	flow    *circuit.FlowSimulator
	state   *circuit.State
	network *circuit.PathNetwork
	lever   *lever
	bulb    *bulb

	// scene
	layout layout.Layout
	wires  [][]circuit.Vec

	// audio
	player *audio.Player
	level  float64

	// timing
	now        func() time.Time
	last       time.Time
	closedAt   time.Time
	colorPhase float64

	// input
	handleHovered bool

	log     *zap.SugaredLogger
	lastErr error
}

// New builds the scene from y and wires the circuit to the audio player.
func New(cfg config.Config, y layout.Layout, player *audio.Player, logger *zap.SugaredLogger) (*Game, error) {
	reseed := circuit.ReseedRandom
	if cfg.Reseed == "resume" {
		reseed = circuit.ReseedResume
	}
	g := &Game{
		anim:   circuit.NewAnimator(),
		flow:   circuit.NewFlowSimulator(cfg.PoolSize, cfg.FlowSpeed, circuit.WithReseed(reseed)),
		lever:  &lever{},
		bulb:   &bulb{},
		player: player,
		now:    time.Now,
		log:    logger,
	}
	g.state = circuit.NewState(g.lever, g.bulb, g.flow, g.anim, circuit.WithLogger(logger))
	g.state.OnToggle(g.onToggle)
	if err := g.setLayout(y); err != nil {
		return nil, err
	}
	g.last = g.now()
	return g, nil
}

// setLayout rebuilds the route. Particles keep their progress.
func (g *Game) setLayout(y layout.Layout) error {
	segs, err := y.Segments()
	if err != nil {
		return err
	}
	g.layout = y
	g.network = circuit.NewPathNetwork(segs...)
	g.flow.SetNetwork(g.network)
	g.wires = g.wires[:0]
	for _, s := range segs {
		g.wires = append(g.wires, polyline(s, 24))
	}
	g.log.Infof("layout: %d wires, loop length %.2f", g.network.Len(), g.network.TotalLength())
	return nil
}

func (g *Game) onToggle(on bool) {
	if on {
		g.closedAt = g.now()
	}
	g.player.SetCircuit(on)
	g.log.Infof("switch %s", g.state)
}

func (g *Game) Update() error {
	now := g.now()
	dt := now.Sub(g.last)
	g.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > config.MaxFrameDelta {
		dt = config.MaxFrameDelta
	}

	if err := g.handleInput(); err != nil {
		return err
	}

	g.anim.Advance(dt)
	g.flow.Advance(dt.Seconds())

	g.colorPhase += dt.Seconds() * 0.1
	g.level = config.SmoothingFactor*g.level + (1-config.SmoothingFactor)*g.player.Level()
	return nil
}

func (g *Game) handleInput() error {
	mouseX, mouseY := ebiten.CursorPosition()
	hx, hy := toScreen(g.handlePos())
	dx, dy := float64(mouseX)-float64(hx), float64(mouseY)-float64(hy)
	g.handleHovered = math.Hypot(dx, dy) <= config.HandleHitRadius

	if g.handleHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.state.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.state.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.changeSpeed(config.SpeedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.changeSpeed(-config.SpeedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if g.flow.Reseed() == circuit.ReseedRandom {
			g.flow.SetReseed(circuit.ReseedResume)
		} else {
			g.flow.SetReseed(circuit.ReseedRandom)
		}
		g.log.Infof("restart policy: %s", g.flow.Reseed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.report(g.openLayoutDialog())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.report(g.saveLayoutDialog())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) changeSpeed(delta float64) {
	s := g.flow.Speed() + delta
	s = math.Max(-config.MaxFlowSpeed, math.Min(config.MaxFlowSpeed, s))
	g.flow.SetSpeed(math.Round(s*100) / 100)
	g.log.Debugf("flow speed %.2f", g.flow.Speed())
}

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	g.log.Errorf("%s", err)
}

var layoutFilter = zenity.FileFilters{{
	Name:     "Circuit layout",
	Patterns: []string{"*.json"},
}}

func (g *Game) openLayoutDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Circuit Layout"),
		layoutFilter,
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	y, err := layout.Load(filename)
	if err == nil {
		err = g.setLayout(y)
	}
	if err != nil {
		_ = zenity.Error(err.Error(), zenity.Title("Layout not loaded"))
		return err
	}
	g.lastErr = nil
	return nil
}

func (g *Game) saveLayoutDialog() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Circuit Layout"),
		zenity.ConfirmOverwrite(),
		zenity.Filename("circuit.json"),
		layoutFilter,
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if err := layout.Save(filename, g.layout); err != nil {
		return err
	}
	g.log.Infof("layout saved to %s", filename)
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
