// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Apitest measures the CPU cost of draw call submission.
// It renders a fixed per-frame workload through the
// selected graphics backend and reports the frame rate;
// keys switch the backend and the workload at runtime.
package main

import (
	"os"
	"runtime"

	"github.com/gviegas/apitest/harness"
	"github.com/gviegas/apitest/internal/console"

	_ "github.com/gviegas/apitest/driver/gl"
	_ "github.com/gviegas/apitest/driver/null"
)

// The window system and the GL context are bound to the
// main thread.
func init() { runtime.LockOSThread() }

func main() {
	h, err := harness.New(harness.Config{})
	if err != nil {
		console.Debug("apitest: %v", err)
		os.Exit(1)
	}
	h.Run()
}
