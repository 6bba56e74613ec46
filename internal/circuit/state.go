package circuit

import (
	"image/color"
	"math"
	"time"
)

const (
	// AngleOpen is the lever angle in radians with the switch open.
	AngleOpen = math.Pi / 3
	// AngleClosed sits slightly off flat so the lever rests on the contact.
	AngleClosed = 0.05

	LeverDuration = 300 * time.Millisecond
)

// Appearance is how the bulb looks in one circuit state.
type Appearance struct {
	Emissive          color.RGBA
	EmissiveIntensity float64
	Base              color.RGBA
	LightIntensity    float64
}

var (
	BulbOn = Appearance{
		Emissive:          color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff},
		EmissiveIntensity: 2.0,
		Base:              color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		LightIntensity:    1.5,
	}
	BulbOff = Appearance{
		Emissive:          color.RGBA{A: 0xff},
		EmissiveIntensity: 1.0,
		Base:              color.RGBA{R: 0xff, G: 0xcc, B: 0x33, A: 0xff},
		LightIntensity:    0,
	}
)

// AppearanceFor returns the bulb appearance for a closed (on) or open circuit.
func AppearanceFor(on bool) Appearance {
	if on {
		return BulbOn
	}
	return BulbOff
}

// AngleFor returns the lever angle for a closed (on) or open circuit.
func AngleFor(on bool) float64 {
	if on {
		return AngleClosed
	}
	return AngleOpen
}

// Bulb receives appearance changes.
type Bulb interface {
	SetAppearance(Appearance)
}

// Flow is the part of FlowSimulator the circuit drives.
type Flow interface {
	SetActive(bool)
}

// Logger is satisfied by *zap.SugaredLogger.
type Logger interface {
	Debugf(format string, v ...interface{})
}

// State is the open/closed switch. Conduction and the bulb change the moment
// the switch is toggled; only the lever swing is animated.
type State struct {
	on        bool
	lever     Property
	bulb      Bulb
	flow      Flow
	anim      *Animator
	duration  time.Duration
	ease      Easing
	listeners []func(on bool)
	log       Logger
}

type StateOption func(*State)

// WithLeverMotion overrides the lever swing duration and easing.
func WithLeverMotion(d time.Duration, ease Easing) StateOption {
	return func(s *State) {
		s.duration = d
		s.ease = ease
	}
}

func WithLogger(l Logger) StateOption {
	return func(s *State) { s.log = l }
}

// NewState starts open. The lever and bulb are set to the open values
// directly, without animation. lever must be comparable (normally a pointer)
// since the animator keys tweens by it.
func NewState(lever Property, bulb Bulb, flow Flow, anim *Animator, opts ...StateOption) *State {
	s := &State{
		lever:    lever,
		bulb:     bulb,
		flow:     flow,
		anim:     anim,
		duration: LeverDuration,
		ease:     QuadOut,
	}
	for _, o := range opts {
		o(s)
	}
	lever.SetValue(AngleOpen)
	bulb.SetAppearance(BulbOff)
	return s
}

// OnToggle registers fn to run after every toggle with the new state.
func (s *State) OnToggle(fn func(on bool)) {
	s.listeners = append(s.listeners, fn)
}

func (s *State) On() bool { return s.on }

func (s *State) TargetAngle() float64 { return AngleFor(s.on) }

// Toggle flips the switch.
func (s *State) Toggle() {
	s.on = !s.on
	s.anim.Start(s.lever, AngleFor(s.on), s.duration, s.ease)
	s.bulb.SetAppearance(AppearanceFor(s.on))
	s.flow.SetActive(s.on)
	if s.log != nil {
		s.log.Debugf("circuit %s, lever %.3f -> %.3f", s, s.lever.Value(), AngleFor(s.on))
	}
	for _, fn := range s.listeners {
		fn(s.on)
	}
}

func (s *State) String() string {
	if s.on {
		return "closed"
	}
	return "open"
}
