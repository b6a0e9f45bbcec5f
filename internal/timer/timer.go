// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package timer provides a monotonic tick source.
package timer

import (
	"time"
)

// The tick epoch is process-local; only deltas are
// meaningful.
var epoch = time.Now()

// Read returns the current tick count.
// Ticks advance monotonically and never wrap in practice
// (one tick is a nanosecond).
func Read() uint64 {
	return uint64(time.Since(epoch))
}

// ToSec converts a tick delta to seconds.
func ToSec(ticks uint64) float64 {
	return float64(ticks) / float64(time.Second)
}
