// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"errors"

	"github.com/gviegas/apitest/driver"
	"github.com/gviegas/apitest/wsi"
)

func init() { driver.Register(&drv) }

// drv is the registered Driver ("gl").
var drv Driver

// Driver implements driver.Driver for OpenGL contexts.
type Driver struct {
	api *API
}

// Name returns "gl".
func (d *Driver) Name() string { return "gl" }

// Open initializes the driver.
// The GL driver renders through the window's own context,
// so all it can check here is that a context-capable wsi
// platform is present; entry points are resolved when the
// swapchain binds a window.
func (d *Driver) Open() (driver.API, error) {
	if wsi.PlatformInUse() == wsi.None {
		return nil, driver.ErrNotInstalled
	}
	if d.api == nil {
		d.api = &API{drv: d}
	}
	return d.api, nil
}

// Close deinitializes the driver.
func (d *Driver) Close() {
	d.api = nil
}

// API implements driver.API.
type API struct {
	drv *Driver
	fn  procs
}

// Driver returns the Driver that owns the API.
func (a *API) Driver() driver.Driver { return a.drv }

var errNotReady = errors.New("gl: no current context")

// NewSwapchain makes win's context current on the calling
// thread and resolves the GL entry points through it.
// The swap interval is set to 0: a submission benchmark
// must not be capped by vertical sync.
func (a *API) NewSwapchain(win wsi.Window) (driver.Swapchain, driver.Framebuf, error) {
	if win == nil {
		return nil, nil, driver.ErrWindow
	}
	if err := wsi.MakeContextCurrent(win); err != nil {
		return nil, nil, err
	}
	if !a.fn.loaded {
		if err := a.fn.loadProcs(); err != nil {
			return nil, nil, err
		}
	}
	wsi.SwapInterval(0)
	return &Swapchain{win: win}, &Framebuf{}, nil
}

// NewTest creates a GL implementation of the identified
// test case.
func (a *API) NewTest(id driver.TestID) (driver.TestCase, error) {
	switch id {
	case driver.StreamingVB:
		return &streamingVB{fn: &a.fn}, nil
	case driver.CubesUniform:
		return &cubes{fn: &a.fn, dynamic: false}, nil
	case driver.CubesDynamicBuffer:
		return &cubes{fn: &a.fn, dynamic: true}, nil
	}
	return nil, driver.ErrNoTest
}

// Destroy releases the API.
// The context itself belongs to the window; dropping the
// resolved entry points is all there is to do.
func (a *API) Destroy() {
	a.fn = procs{}
	a.drv.api = nil
}

// Swapchain implements driver.Swapchain over the window's
// GL back buffer.
type Swapchain struct {
	win wsi.Window
}

// Present swaps the window's buffers.
func (s *Swapchain) Present() error {
	return wsi.SwapBuffers(s.win)
}

// Destroy releases the swapchain.
func (s *Swapchain) Destroy() {
	s.win = nil
}

// Framebuf is the default framebuffer of the context.
type Framebuf struct{}

// Destroy releases the framebuffer.
// FBO 0 is owned by the context; nothing to do.
func (f *Framebuf) Destroy() {}
