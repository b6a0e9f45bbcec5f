// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package null implements the driver contract without
// touching a GPU or a window system.
// Every operation is recorded, so the package doubles as
// the reference backend for harness tests and as a way to
// run the benchmark headless.
package null

import (
	"github.com/gviegas/apitest/driver"
	"github.com/gviegas/apitest/linear"
	"github.com/gviegas/apitest/wsi"
)

func init() { driver.Register(&Drv) }

// Drv is the registered Driver ("null").
var Drv Driver

// Driver implements driver.Driver.
// Trail records the order of contract calls, one short
// string per call, across Open/Close cycles.
type Driver struct {
	// FailOpen makes Open fail with ErrNoDevice.
	FailOpen bool

	Trail []string

	api *API
}

// Name returns "null".
func (d *Driver) Name() string { return "null" }

// Open initializes the driver.
func (d *Driver) Open() (driver.API, error) {
	if d.FailOpen {
		d.Trail = append(d.Trail, "open fail")
		return nil, driver.ErrNoDevice
	}
	d.Trail = append(d.Trail, "open")
	if d.api == nil {
		d.api = &API{drv: d}
	}
	return d.api, nil
}

// Close deinitializes the driver.
func (d *Driver) Close() {
	d.Trail = append(d.Trail, "close")
	d.api = nil
}

// Reset clears the trail and all failure injection, so a
// test starts from a clean slate.
func (d *Driver) Reset() {
	*d = Driver{}
}

// API implements driver.API.
type API struct {
	// FailSwapchain makes NewSwapchain fail with ErrWindow.
	FailSwapchain bool

	// FailTest makes NewTest fail with ErrNoTest.
	FailTest bool

	// FailInit makes the Init of test cases created by
	// NewTest fail.
	FailInit bool

	// LastTest is the state shared by the most recently
	// created test case.
	LastTest *Test

	drv *Driver
}

// Driver returns the Driver that owns the API.
func (a *API) Driver() driver.Driver { return a.drv }

// NewSwapchain creates the presentation pair.
// The null backend accepts a nil window.
func (a *API) NewSwapchain(wsi.Window) (driver.Swapchain, driver.Framebuf, error) {
	if a.FailSwapchain {
		a.drv.Trail = append(a.drv.Trail, "swapchain fail")
		return nil, nil, driver.ErrWindow
	}
	a.drv.Trail = append(a.drv.Trail, "swapchain")
	return &Swapchain{drv: a.drv}, &Framebuf{drv: a.drv}, nil
}

// NewTest creates a counting test case.
func (a *API) NewTest(id driver.TestID) (driver.TestCase, error) {
	if a.FailTest {
		a.drv.Trail = append(a.drv.Trail, "test fail")
		return nil, driver.ErrNoTest
	}
	a.drv.Trail = append(a.drv.Trail, "test "+id.String())
	t := &Test{drv: a.drv, ID: id, FailInit: a.FailInit}
	a.LastTest = t
	switch id.Category() {
	case driver.CatStreaming:
		return &streamTest{t}, nil
	default:
		return &cubesTest{t}, nil
	}
}

// Destroy releases the API.
func (a *API) Destroy() {
	a.drv.Trail = append(a.drv.Trail, "destroy api")
}

// Swapchain implements driver.Swapchain.
type Swapchain struct {
	Presents int

	drv *Driver
}

// Present presents the current back buffer.
func (s *Swapchain) Present() error {
	s.Presents++
	return nil
}

// Destroy releases the swapchain.
func (s *Swapchain) Destroy() {
	s.drv.Trail = append(s.drv.Trail, "destroy swapchain")
}

// Framebuf implements driver.Framebuf.
type Framebuf struct {
	drv *Driver
}

// Destroy releases the framebuffer.
func (f *Framebuf) Destroy() {
	f.drv.Trail = append(f.drv.Trail, "destroy framebuf")
}

// Test is the state shared by null test cases.
// Counters accumulate across frames; BadCalls counts draw
// calls made outside a Begin/End pair.
type Test struct {
	ID driver.TestID

	// FailInit makes Init fail.
	FailInit bool

	// SkipFrames makes the next n calls to Begin refuse
	// the frame.
	SkipFrames int

	Inits    int
	Begins   int
	Ends     int
	Draws    int
	Verts    int
	Mats     int
	BadCalls int

	// MinBatch and MaxBatch are the smallest and largest
	// vertex counts seen in a single streaming draw.
	MinBatch int
	MaxBatch int

	drv     *Driver
	inFrame bool
}

// Init allocates nothing.
func (t *Test) Init() error {
	if t.FailInit {
		return driver.ErrNoDevice
	}
	t.Inits++
	return nil
}

// Begin accepts or refuses the frame.
func (t *Test) Begin(wsi.Window, driver.Swapchain, driver.Framebuf) bool {
	if t.SkipFrames > 0 {
		t.SkipFrames--
		return false
	}
	t.Begins++
	t.inFrame = true
	return true
}

// End presents sc.
func (t *Test) End(sc driver.Swapchain) {
	if !t.inFrame {
		t.BadCalls++
		return
	}
	t.inFrame = false
	t.Ends++
	sc.Present()
}

// Destroy releases the test case.
func (t *Test) Destroy() {
	t.drv.Trail = append(t.drv.Trail, "destroy test "+t.ID.String())
}

type streamTest struct{ *Test }

// Draw counts a streamed batch.
func (t *streamTest) Draw(verts []driver.VertexPos2) {
	if !t.inFrame {
		t.BadCalls++
		return
	}
	n := len(verts)
	t.Draws++
	t.Verts += n
	if t.MinBatch == 0 || n < t.MinBatch {
		t.MinBatch = n
	}
	if n > t.MaxBatch {
		t.MaxBatch = n
	}
}

type cubesTest struct{ *Test }

// Draw counts one draw per transform.
func (t *cubesTest) Draw(transforms []linear.M4) {
	if !t.inFrame {
		t.BadCalls++
		return
	}
	t.Draws += len(transforms)
	t.Mats += len(transforms)
}
