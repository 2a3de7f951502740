package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRotationTimer(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"just swapped", 0, false},
		{"before the interval", 9*time.Second + 999*time.Millisecond, false},
		{"exactly the interval", 10 * time.Second, true},
		{"past the interval", time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewRotationTimer(10 * time.Second)
			timer.Reset(start)
			assert.Equal(t, tt.want, timer.Due(start.Add(tt.elapsed)))
		})
	}

	t.Run("force", func(t *testing.T) {
		timer := NewRotationTimer(time.Hour)
		timer.Reset(start)
		timer.Force()
		assert.True(t, timer.Due(start))

		timer.Reset(start.Add(time.Second))
		assert.False(t, timer.Due(start.Add(time.Second)))
		assert.Equal(t, start.Add(time.Second), timer.Last())
		assert.Equal(t, start.Add(time.Hour+time.Second), timer.Next())
	})
}

func TestRedrawTimer(t *testing.T) {
	timer := NewRedrawTimer(time.Second)
	timer.Arm(start)
	assert.Equal(t, start.Add(time.Second), timer.Deadline())

	// re-armed from when it was observed, not from the old deadline
	timer.Arm(start.Add(3 * time.Second))
	assert.Equal(t, start.Add(4*time.Second), timer.Deadline())
}
