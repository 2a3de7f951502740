package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventString(t *testing.T) {
	assert.Equal(t, "resized(window=2, 640x480)", Event{Kind: KindResized, Window: 2, Width: 640, Height: 480}.String())
	assert.Equal(t, "close-requested(window=1)", Event{Kind: KindCloseRequested, Window: 1}.String())
	assert.Equal(t, "other(window=0)", Event{}.String())
	assert.Equal(t, "timer-fired", KindTimerFired.String())
}
