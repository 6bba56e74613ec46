package circuit

import "math/rand/v2"

// Particle is one charge carrier marker. Progress is the only state carried
// between frames; Pos and Visible are recomputed by every Advance.
type Particle struct {
	Progress float64
	Pos      Vec
	Visible  bool
}

// ReseedPolicy decides what happens to particle progress when flow restarts.
type ReseedPolicy int

const (
	// ReseedRandom spreads the particles out again at random.
	ReseedRandom ReseedPolicy = iota
	// ReseedResume keeps every particle where it stopped.
	ReseedResume
)

func (p ReseedPolicy) String() string {
	switch p {
	case ReseedRandom:
		return "random"
	case ReseedResume:
		return "resume"
	default:
		return "unknown"
	}
}

// FlowSimulator moves a fixed pool of particles around a PathNetwork at a
// constant speed in layout units per second.
type FlowSimulator struct {
	particles []Particle
	speed     float64
	network   *PathNetwork
	active    bool
	reseed    ReseedPolicy
	rng       *rand.Rand
}

type FlowOption func(*FlowSimulator)

// WithRand sets the random source used for seeding progress.
func WithRand(r *rand.Rand) FlowOption {
	return func(f *FlowSimulator) { f.rng = r }
}

// WithReseed sets the restart policy. The default is ReseedRandom.
func WithReseed(p ReseedPolicy) FlowOption {
	return func(f *FlowSimulator) { f.reseed = p }
}

func NewFlowSimulator(poolSize int, speed float64, opts ...FlowOption) *FlowSimulator {
	if poolSize < 0 {
		poolSize = 0
	}
	f := &FlowSimulator{
		particles: make([]Particle, poolSize),
		speed:     speed,
	}
	for _, o := range opts {
		o(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f.seed()
	return f
}

func (f *FlowSimulator) seed() {
	for i := range f.particles {
		f.particles[i].Progress = f.rng.Float64()
	}
}

// SetNetwork binds a route. Progress is kept, so particles keep their relative
// spacing on the new route.
func (f *FlowSimulator) SetNetwork(n *PathNetwork) { f.network = n }

func (f *FlowSimulator) Network() *PathNetwork { return f.network }

// SetActive starts or stops the flow. Particles are hidden on the next
// Advance after stopping.
func (f *FlowSimulator) SetActive(active bool) {
	f.active = active
	if active && f.reseed == ReseedRandom {
		f.seed()
	}
}

func (f *FlowSimulator) Active() bool { return f.active }

func (f *FlowSimulator) SetReseed(p ReseedPolicy) { f.reseed = p }

func (f *FlowSimulator) Reseed() ReseedPolicy { return f.reseed }

func (f *FlowSimulator) Speed() float64 { return f.speed }

func (f *FlowSimulator) SetSpeed(speed float64) { f.speed = speed }

// Particles exposes the pool for drawing. Callers must not keep or modify it.
func (f *FlowSimulator) Particles() []Particle { return f.particles }

// Advance moves every particle dt seconds along the route.
func (f *FlowSimulator) Advance(dt float64) {
	n := f.network
	if !f.active || n == nil || n.Len() == 0 || n.TotalLength() == 0 {
		for i := range f.particles {
			f.particles[i].Visible = false
		}
		return
	}
	step := f.speed * dt / n.TotalLength()
	for i := range f.particles {
		p := &f.particles[i]
		p.Progress = wrap01(p.Progress + step)
		idx, u := n.Locate(p.Progress)
		p.Pos = n.Segment(idx).PointAt(Clamp01(u))
		p.Visible = true
	}
}
