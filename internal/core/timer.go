package core

import "time"

const maxRate = 1 << 20

// FixedStep paces generator steps at a steady rate independent of the frame
// rate, so a window can show propagation at a readable speed.
type FixedStep struct {
	rate        int
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBurst    int
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given number
// of steps per second.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{maxBurst: 64, now: time.Now}
	fs.SetRate(rate)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 60 and
// rates are capped at maxRate.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 60
	}
	f.rate = min(rate, maxRate)
	f.step = time.Second / time.Duration(f.rate)
}

// Rate returns the current steps per second.
func (f *FixedStep) Rate() int { return f.rate }

// Due reports how many steps should run now, capped so a stalled frame does
// not trigger an unbounded catch-up.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	if n > f.maxBurst {
		n = f.maxBurst
	}
	return n
}
