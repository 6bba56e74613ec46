package circuit

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

// cyclicDist is the distance between two progress values on the unit circle.
func cyclicDist(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1-d)
}

func progresses(f *FlowSimulator) []float64 {
	out := make([]float64, 0, len(f.Particles()))
	for _, p := range f.Particles() {
		out = append(out, p.Progress)
	}
	return out
}

func newActiveFlow(t *testing.T, pool int, speed float64, segs ...Segment) *FlowSimulator {
	t.Helper()
	f := NewFlowSimulator(pool, speed, WithRand(testRand()), WithReseed(ReseedResume))
	f.SetNetwork(NewPathNetwork(segs...))
	f.SetActive(true)
	return f
}

func TestFlowSeedsInRange(t *testing.T) {
	f := NewFlowSimulator(100, 1, WithRand(testRand()))
	if len(f.Particles()) != 100 {
		t.Fatalf("pool size %d", len(f.Particles()))
	}
	distinct := map[float64]bool{}
	for _, p := range f.Particles() {
		if p.Progress < 0 || p.Progress >= 1 {
			t.Fatalf("progress %v out of [0,1)", p.Progress)
		}
		if p.Visible {
			t.Fatal("particle visible before first Advance")
		}
		distinct[p.Progress] = true
	}
	if len(distinct) < 90 {
		t.Fatalf("only %d distinct seeds", len(distinct))
	}
}

func TestFlowFullLoop(t *testing.T) {
	f := newActiveFlow(t, 1, 1, straight(2, 3, 5)...)
	start := f.Particles()[0].Progress
	f.Advance(5)
	if d := cyclicDist(f.Particles()[0].Progress, wrap01(start+0.5)); d > 1e-9 {
		t.Fatalf("half loop off by %v", d)
	}
	f.Advance(5)
	if d := cyclicDist(f.Particles()[0].Progress, start); d > 1e-9 {
		t.Fatalf("full loop: got %v, want %v", f.Particles()[0].Progress, start)
	}
}

func TestFlowAdvanceZero(t *testing.T) {
	f := newActiveFlow(t, 8, 3, straight(2, 3, 5)...)
	f.Advance(0.1)
	before := append([]Particle(nil), f.Particles()...)
	f.Advance(0)
	if diff := cmp.Diff(before, f.Particles()); diff != "" {
		t.Fatalf("Advance(0) changed particles (-before +after):\n%s", diff)
	}
}

func TestFlowProgressConservation(t *testing.T) {
	whole := newActiveFlow(t, 16, 2.5, straight(2, 3, 5)...)
	pieces := newActiveFlow(t, 16, 2.5, straight(2, 3, 5)...)
	whole.Advance(3.7)
	for _, dt := range []float64{0.016, 0.5, 1.2, 0.033, 1.951} {
		pieces.Advance(dt)
	}
	for i := range whole.Particles() {
		a, b := whole.Particles()[i].Progress, pieces.Particles()[i].Progress
		if d := cyclicDist(a, b); d > 1e-9 {
			t.Fatalf("particle %d: one step %v, many steps %v", i, a, b)
		}
	}
}

func TestFlowProportionalToTime(t *testing.T) {
	f := newActiveFlow(t, 1, 1, straight(2, 3, 5)...)
	f.Particles()[0].Progress = 0
	f.Advance(0.5)
	short := f.Particles()[0].Progress
	f.Particles()[0].Progress = 0
	f.Advance(2)
	long := f.Particles()[0].Progress
	if math.Abs(long-4*short) > 1e-12 {
		t.Fatalf("4x time moved %v, want 4 * %v", long, short)
	}
}

func TestFlowWrapsAcrossZero(t *testing.T) {
	f := newActiveFlow(t, 1, 1, straight(2, 3, 5)...)
	f.Particles()[0].Progress = 0.95
	f.Advance(1)
	p := f.Particles()[0]
	if math.Abs(p.Progress-0.05) > 1e-9 {
		t.Fatalf("progress %v, want 0.05", p.Progress)
	}
	if diff := cmp.Diff(Vec{0.5, 0}, p.Pos, approx); diff != "" {
		t.Fatalf("position (-want +got):\n%s", diff)
	}
}

func TestFlowPositionsOnRoute(t *testing.T) {
	f := newActiveFlow(t, 1, 1, straight(2, 3, 5)...)
	f.Particles()[0].Progress = 0.2
	f.Advance(0.5)
	p := f.Particles()[0]
	if !p.Visible {
		t.Fatal("particle hidden while active")
	}
	if diff := cmp.Diff(Vec{2.5, 0}, p.Pos, approx); diff != "" {
		t.Fatalf("position (-want +got):\n%s", diff)
	}
}

func TestFlowInactiveHides(t *testing.T) {
	f := newActiveFlow(t, 4, 1, straight(2, 3, 5)...)
	f.Advance(0.1)
	f.SetActive(false)
	before := progresses(f)
	f.Advance(3)
	for i, p := range f.Particles() {
		if p.Visible {
			t.Fatalf("particle %d visible after stop", i)
		}
	}
	if diff := cmp.Diff(before, progresses(f)); diff != "" {
		t.Fatalf("progress moved while stopped (-before +after):\n%s", diff)
	}
}

func TestFlowEmptyAndZeroLengthHide(t *testing.T) {
	for name, segs := range map[string][]Segment{
		"empty": nil,
		"zero":  {Line{From: Vec{1, 1}, To: Vec{1, 1}}},
	} {
		t.Run(name, func(t *testing.T) {
			f := NewFlowSimulator(4, 1, WithRand(testRand()))
			f.SetNetwork(NewPathNetwork(segs...))
			f.SetActive(true)
			f.Advance(1)
			for i, p := range f.Particles() {
				if p.Visible {
					t.Fatalf("particle %d visible on route with no length", i)
				}
			}
		})
	}
	f := NewFlowSimulator(2, 1, WithRand(testRand()))
	f.SetActive(true)
	f.Advance(1)
	if f.Particles()[0].Visible {
		t.Fatal("particle visible without a network")
	}
}

func TestFlowNetworkSwapKeepsProgress(t *testing.T) {
	f := newActiveFlow(t, 8, 1, straight(2, 3, 5)...)
	f.Advance(0.3)
	before := progresses(f)
	f.SetNetwork(NewPathNetwork(straight(40, 1)...))
	if diff := cmp.Diff(before, progresses(f)); diff != "" {
		t.Fatalf("swap changed progress (-before +after):\n%s", diff)
	}
	f.Advance(0)
	for i, p := range f.Particles() {
		want, _ := f.Network().PointAt(p.Progress)
		if diff := cmp.Diff(want, p.Pos, approx); diff != "" {
			t.Fatalf("particle %d not on new route (-want +got):\n%s", i, diff)
		}
	}
}

func TestFlowReseedPolicy(t *testing.T) {
	random := NewFlowSimulator(8, 1, WithRand(testRand()))
	before := progresses(random)
	random.SetActive(true)
	if cmp.Equal(before, progresses(random)) {
		t.Fatal("ReseedRandom kept old progress on start")
	}

	resume := NewFlowSimulator(8, 1, WithRand(testRand()), WithReseed(ReseedResume))
	before = progresses(resume)
	resume.SetActive(true)
	resume.SetActive(false)
	resume.SetActive(true)
	if diff := cmp.Diff(before, progresses(resume)); diff != "" {
		t.Fatalf("ReseedResume moved particles (-before +after):\n%s", diff)
	}
}

func TestFlowReverseSpeed(t *testing.T) {
	f := newActiveFlow(t, 1, -1, straight(2, 3, 5)...)
	f.Particles()[0].Progress = 0.05
	f.Advance(1)
	if got := f.Particles()[0].Progress; math.Abs(got-0.95) > 1e-9 {
		t.Fatalf("progress %v, want 0.95", got)
	}
}

func TestFlowNoAllocations(t *testing.T) {
	f := newActiveFlow(t, 64, 1, straight(2, 3, 5)...)
	allocs := testing.AllocsPerRun(100, func() { f.Advance(0.016) })
	if allocs != 0 {
		t.Fatalf("Advance allocated %v times per run", allocs)
	}
}
