package debugui

import (
	"testing"
	"time"

	"github.com/plus3/tetrodeck/loop"
	"github.com/stretchr/testify/assert"
)

func TestPerformanceWindowRing(t *testing.T) {
	pw := NewPerformanceWindow(4)
	stats := &loop.SchedulerStats{Systems: []loop.SystemStats{
		{Name: "GravitySystem", LastDuration: 2 * time.Millisecond},
	}}

	for range 6 {
		pw.record(0.016, stats)
	}

	assert.Equal(t, 2, pw.frameIndex)
	assert.InDelta(t, 16.0, pw.averageFrameTime(), 1e-3)
	assert.Len(t, pw.latency["GravitySystem"], 4)
	assert.InDelta(t, 2.0, pw.latency["GravitySystem"][1], 1e-6)
}
