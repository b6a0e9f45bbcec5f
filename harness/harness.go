// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package harness drives the benchmark: it owns the window,
// the active backend and test case, generates the per-frame
// workload input and reports the frame rate.
package harness

import (
	"errors"
	"sync"

	"github.com/gviegas/apitest/driver"
	"github.com/gviegas/apitest/internal/console"
	"github.com/gviegas/apitest/internal/timer"
	"github.com/gviegas/apitest/linear"
	"github.com/gviegas/apitest/wsi"
)

// Driver names bound to keys.
const (
	apiDX11 = "dx11"
	apiGL   = "gl"
)

var errNoDriver = errors.New("harness: driver not found")

// Config parameterizes a Harness.
// Zero values select the defaults of the original benchmark.
type Config struct {
	Title         string
	Width, Height int
	API           string
	Test          driver.TestID
}

func (c *Config) defaults() {
	if c.Title == "" {
		c.Title = "Test Window"
	}
	if c.Width == 0 {
		c.Width = 1024
	}
	if c.Height == 0 {
		c.Height = 748
	}
	if c.API == "" {
		c.API = apiGL
	}
	// The zero TestID is already the default workload.
}

// Harness owns the window and the active
// (driver, API, swapchain, framebuffer, test case) tuple.
// The tuple is all present or all absent, except that the
// test case slot may be empty after a failed SetTest.
// A Harness is single-threaded: Run, the wsi handlers and
// every transition execute on the calling goroutine.
type Harness struct {
	win    wsi.Window
	drv    driver.Driver
	api    driver.API
	sc     driver.Swapchain
	fb     driver.Framebuf
	testID driver.TestID
	test   driver.TestCase
	fps    fpsCounter
	quit   bool

	transformOnce sync.Once
	transforms    []linear.M4
}

// New creates the window and brings up the initial backend
// and test case.
// Failure here is the fatal startup path: the caller is
// expected to exit non-zero.
func New(cfg Config) (*Harness, error) {
	cfg.defaults()
	wsi.SetAppName("api_speed_test")
	win, err := wsi.NewWindow(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return nil, err
	}
	h := &Harness{win: win, testID: cfg.Test}
	wsi.SetWindowHandler(h)
	wsi.SetKeyboardHandler(h)
	win.Map()
	if err := h.SetAPI(cfg.API); err != nil {
		h.Cleanup()
		return nil, err
	}
	if err := h.SetTest(cfg.Test); err != nil {
		h.Cleanup()
		return nil, err
	}
	return h, nil
}

// SetAPI replaces the active backend.
// The old tuple is torn down first, in order: test case,
// framebuffer, swapchain, API, driver. When name is empty
// that is all; otherwise the named driver is opened, its
// presentation pair created, and the current test case
// re-created on it if one was active.
// On failure the tuple is left empty.
func (h *Harness) SetAPI(name string) error {
	had := h.test != nil
	if h.test != nil {
		h.test.Destroy()
		h.test = nil
	}
	if h.fb != nil {
		h.fb.Destroy()
		h.fb = nil
	}
	if h.sc != nil {
		h.sc.Destroy()
		h.sc = nil
	}
	if h.api != nil {
		h.api.Destroy()
		h.api = nil
	}
	if h.drv != nil {
		h.drv.Close()
		h.drv = nil
	}
	if name == "" {
		return nil
	}
	d := driver.ForName(name)
	if d == nil {
		console.Debug("No driver named %q", name)
		return errNoDriver
	}
	api, err := d.Open()
	if err != nil {
		console.Debug("%s: %v", name, err)
		return err
	}
	sc, fb, err := api.NewSwapchain(h.win)
	if err != nil {
		api.Destroy()
		d.Close()
		console.Debug("%s: %v", name, err)
		return err
	}
	h.drv = d
	h.api = api
	h.sc = sc
	h.fb = fb
	if had {
		return h.SetTest(h.testID)
	}
	return nil
}

// SetTest replaces the active test case with the one
// identified by id, created on the current backend.
// On failure the test case slot is left empty; rendering
// stops until a later SetTest succeeds.
func (h *Harness) SetTest(id driver.TestID) error {
	if h.test != nil {
		h.test.Destroy()
		h.test = nil
	}
	h.testID = id
	if h.api == nil {
		return errNoDriver
	}
	tc, err := h.api.NewTest(id)
	if err != nil {
		console.Debug("%v: %v", id, err)
		return err
	}
	if err := tc.Init(); err != nil {
		tc.Destroy()
		console.Debug("%v: %v", id, err)
		return err
	}
	h.test = tc
	return nil
}

// Run pumps window events and renders until quit, then
// cleans up. Events never block rendering: Dispatch only
// drains what is already queued.
func (h *Harness) Run() {
	for !h.quit {
		wsi.Dispatch()
		h.render()
	}
	h.Cleanup()
}

// Cleanup tears down the tuple and the window.
// It is safe to call more than once.
func (h *Harness) Cleanup() {
	h.SetAPI("")
	if h.win != nil {
		h.win.Close()
		h.win = nil
	}
	wsi.SetWindowHandler(nil)
	wsi.SetKeyboardHandler(nil)
}

// render drives one frame.
// A refused Begin drops the frame: no draws, no present,
// no FPS sample.
func (h *Harness) render() {
	if h.test == nil {
		return
	}
	if !h.test.Begin(h.win, h.sc, h.fb) {
		return
	}
	switch h.testID.Category() {
	case driver.CatStreaming:
		h.drawQuads(h.test.(driver.StreamingTest))
	case driver.CatCubes:
		h.drawCubes(h.test.(driver.CubesTest))
	}
	h.test.End(h.sc)
	h.fps.frame(timer.Read())
}

// WindowClose implements wsi.WindowHandler.
func (h *Harness) WindowClose(wsi.Window) { h.quit = true }

// WindowResize implements wsi.WindowHandler.
// Swapchain resize is not supported; the viewport follows
// the window on the next Begin.
func (h *Harness) WindowResize(wsi.Window, int, int) {}

// KeyboardIn implements wsi.KeyboardHandler.
func (h *Harness) KeyboardIn(wsi.Window) {}

// KeyboardOut implements wsi.KeyboardHandler.
func (h *Harness) KeyboardOut(wsi.Window) {}

// KeyboardKey implements wsi.KeyboardHandler.
// Transitions run here, between Dispatch and render, so the
// tuple is always consistent by the time a frame starts.
func (h *Harness) KeyboardKey(key wsi.Key, pressed bool, _ wsi.Modifier) {
	if !pressed {
		return
	}
	switch key {
	case wsi.KeyD:
		console.Debug("Initializing DX11 backend")
		h.SetAPI(apiDX11)
	case wsi.KeyG:
		console.Debug("Initializing GL backend")
		h.SetAPI(apiGL)
	case wsi.KeyF1:
		h.SetTest(driver.StreamingVB)
	case wsi.KeyF2:
		h.SetTest(driver.CubesUniform)
	case wsi.KeyF3:
		h.SetTest(driver.CubesDynamicBuffer)
	case wsi.KeyEsc:
		h.quit = true
	}
}
