package display

import "time"

// RedrawTimer holds the absolute deadline the loop waits on. It is re-armed
// from the time it is observed to fire, so a late wake-up never produces a
// burst of catch-up ticks.
type RedrawTimer struct {
	interval time.Duration
	deadline time.Time
}

func NewRedrawTimer(interval time.Duration) *RedrawTimer {
	return &RedrawTimer{interval: interval}
}

func (t *RedrawTimer) Arm(now time.Time) {
	t.deadline = now.Add(t.interval)
}

func (t *RedrawTimer) Deadline() time.Time {
	return t.deadline
}

// RotationTimer tracks when the picture was last swapped. It is only
// consulted when a frame is about to be drawn.
type RotationTimer struct {
	interval time.Duration
	last     time.Time
	forced   bool
}

func NewRotationTimer(interval time.Duration) *RotationTimer {
	return &RotationTimer{interval: interval}
}

// Due reports whether interval has elapsed since the last swap, inclusive of
// the boundary, or a swap was forced.
func (t *RotationTimer) Due(now time.Time) bool {
	return t.forced || now.Sub(t.last) >= t.interval
}

func (t *RotationTimer) Reset(now time.Time) {
	t.last = now
	t.forced = false
}

// Force makes the next Due return true.
func (t *RotationTimer) Force() {
	t.forced = true
}

func (t *RotationTimer) Last() time.Time {
	return t.last
}

func (t *RotationTimer) Next() time.Time {
	return t.last.Add(t.interval)
}
