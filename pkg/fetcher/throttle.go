package fetcher

import (
	"math/rand"
	"time"
)

// Throttle produces the politeness delay between requests. With
// jitter enabled, each delay is drawn uniformly from
// [0.5*base, 1.5*base]; otherwise it is the fixed base value.
type Throttle struct {
	base   time.Duration
	jitter bool
	rng    *rand.Rand
	sleep  func(time.Duration)
}

func NewThrottle(base time.Duration, jitter bool) *Throttle {
	return &Throttle{
		base:   base,
		jitter: jitter,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:  time.Sleep,
	}
}

// Next returns the duration of the next delay without sleeping.
func (t *Throttle) Next() time.Duration {
	if t.base <= 0 {
		return 0
	}
	if !t.jitter {
		return t.base
	}
	half := float64(t.base) / 2
	return time.Duration(half + t.rng.Float64()*2*half)
}

// Wait blocks for the next delay.
func (t *Throttle) Wait() {
	if d := t.Next(); d > 0 {
		t.sleep(d)
	}
}
