package clock

import "time"

// FakeClock is a Clock pinned to a fixed instant. Tests use it to anchor
// metric windows and move time forward with Advance.
type FakeClock struct {
	now time.Time
}

// NewFakeClock pins the clock at t, normalized to UTC.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the pinned instant forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
