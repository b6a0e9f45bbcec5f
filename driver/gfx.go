// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gviegas/apitest/wsi"
)

// API is the main interface to an open driver.
// It is an abstract factory for the presentation pair and
// for test cases. An API is obtained from a call to
// Driver.Open.
// Note that drawing is absent from this interface: each
// workload's submission path belongs to the TestCase that
// implements it, so no virtual hop is added to the very
// calls being measured.
type API interface {
	// Driver returns the Driver that owns the API.
	Driver() Driver

	// NewSwapchain creates a swapchain bound to win and a
	// framebuffer targeting the swapchain's back buffer.
	// Only one swapchain can be associated with a specific
	// wsi.Window at a time.
	// It must not partially construct state: on error,
	// neither object exists.
	NewSwapchain(win wsi.Window) (Swapchain, Framebuf, error)

	// NewTest creates a backend-specific implementation of
	// the identified test case.
	// It returns ErrNoTest when the backend does not
	// implement the workload.
	NewTest(id TestID) (TestCase, error)

	// Destroy releases the device and any per-process
	// driver state. All swapchains, framebuffers and test
	// cases created from the API must be destroyed first.
	Destroy()
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may hold resources
// that are not managed by GC, so Destroy must be called
// explicitly to ensure such resources are released.
type Destroyer interface {
	Destroy()
}

// Swapchain is the interface that defines the sequence of
// back buffers bound to a window. Presenting it displays
// the rendered frame.
type Swapchain interface {
	Destroyer

	// Present presents the current back buffer.
	Present() error
}

// Framebuf is the interface that defines the render-target
// binding associated with the swapchain's current back
// buffer.
type Framebuf interface {
	Destroyer
}
