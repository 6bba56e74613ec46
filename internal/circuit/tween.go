package circuit

import "time"

// Property is a scalar an Animator can drive.
type Property interface {
	Value() float64
	SetValue(v float64)
}

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func QuadIn(t float64) float64 { return t * t }

func QuadOut(t float64) float64 { return t * (2 - t) }

func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

type tween struct {
	prop     Property
	start    float64
	end      float64
	elapsed  time.Duration
	duration time.Duration
	ease     Easing
}

// Animator runs timed interpolations of scalar properties. At most one
// interpolation is active per property. It is not safe for concurrent use;
// the frame loop owns it.
type Animator struct {
	tweens []*tween
}

func NewAnimator() *Animator {
	return &Animator{}
}

// Start interpolates prop from its current value to end over d. A tween
// already running on prop is dropped and the new one starts from wherever the
// old one had got to.
func (a *Animator) Start(prop Property, end float64, d time.Duration, ease Easing) {
	if ease == nil {
		ease = Linear
	}
	a.Cancel(prop)
	if d <= 0 {
		prop.SetValue(end)
		return
	}
	a.tweens = append(a.tweens, &tween{
		prop:     prop,
		start:    prop.Value(),
		end:      end,
		duration: d,
		ease:     ease,
	})
}

// Cancel stops any tween on prop, leaving it at its current value.
func (a *Animator) Cancel(prop Property) {
	for i, t := range a.tweens {
		if t.prop == prop {
			a.tweens = append(a.tweens[:i], a.tweens[i+1:]...)
			return
		}
	}
}

// Active reports whether prop has a running tween.
func (a *Animator) Active(prop Property) bool {
	for _, t := range a.tweens {
		if t.prop == prop {
			return true
		}
	}
	return false
}

// Target returns the end value of the tween on prop.
func (a *Animator) Target(prop Property) (end float64, ok bool) {
	for _, t := range a.tweens {
		if t.prop == prop {
			return t.end, true
		}
	}
	return 0, false
}

func (a *Animator) Len() int { return len(a.tweens) }

// Advance moves every tween forward by dt. Finished tweens snap to their end
// value and are removed.
func (a *Animator) Advance(dt time.Duration) {
	live := a.tweens[:0]
	for _, t := range a.tweens {
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.prop.SetValue(t.end)
			continue
		}
		k := t.ease(float64(t.elapsed) / float64(t.duration))
		t.prop.SetValue(t.start + (t.end-t.start)*k)
		live = append(live, t)
	}
	for i := len(live); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = live
}
