package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap passes a stream through unchanged and remembers the energy of the
// last frames it carried. Stream runs on the speaker goroutine, level on the
// frame loop.
type levelTap struct {
	beep.Streamer

	mu     sync.Mutex
	energy []float64 // squared mono amplitude per frame, oldest overwritten
	head   int
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{Streamer: src, energy: make([]float64, ringSize)}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Streamer.Stream(samples)
	t.mu.Lock()
	for _, s := range samples[:n] {
		m := (s[0] + s[1]) / 2
		t.energy[t.head] = m * m
		t.head = (t.head + 1) % len(t.energy)
	}
	t.mu.Unlock()
	return n, ok
}

// silence forgets everything heard so far. The hum is paused, not stopped,
// so nothing else would flush the ring.
func (t *levelTap) silence() {
	t.mu.Lock()
	clear(t.energy)
	t.mu.Unlock()
}

// level is the RMS over the newest n frames, capped at the ring size.
func (t *levelTap) level(n int) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	n = min(n, len(t.energy))
	if n <= 0 {
		return 0
	}
	var sum float64
	for i := 1; i <= n; i++ {
		sum += t.energy[(t.head-i+len(t.energy))%len(t.energy)]
	}
	return math.Sqrt(sum / float64(n))
}
