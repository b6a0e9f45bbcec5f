// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package harness

import (
	"github.com/gviegas/apitest/internal/console"
	"github.com/gviegas/apitest/internal/timer"
)

// fpsCounter accumulates presented frames and reports the
// rate once at least one second has elapsed.
// The zero value counts from the timer epoch.
type fpsCounter struct {
	frames int
	start  uint64
	report func(fps float64)
}

// frame records one presented frame at tick now.
func (c *fpsCounter) frame(now uint64) {
	c.frames++
	dt := timer.ToSec(now - c.start)
	if dt < 1 {
		return
	}
	fps := float64(c.frames) / dt
	if c.report != nil {
		c.report(fps)
	} else {
		console.Debug("FPS: %g", fps)
	}
	c.frames = 0
	c.start = now
}
