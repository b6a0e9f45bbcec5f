// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package harness

import (
	"io"
	"testing"

	"github.com/gviegas/apitest/driver"
	"github.com/gviegas/apitest/driver/null"
	"github.com/gviegas/apitest/internal/console"
	"github.com/gviegas/apitest/internal/timer"
	"github.com/gviegas/apitest/linear"
	"github.com/gviegas/apitest/wsi"
)

func init() { console.SetOutput(io.Discard) }

// newNull returns a Harness running on the null backend.
// It does not go through New, so no window is involved.
func newNull(t *testing.T) *Harness {
	null.Drv.Reset()
	h := &Harness{}
	if err := h.SetAPI("null"); err != nil {
		t.Fatalf("h.SetAPI:\nhave %v\nwant nil", err)
	}
	return h
}

func checkTrail(t *testing.T, want ...string) {
	have := null.Drv.Trail
	if len(have) != len(want) {
		t.Fatalf("null.Drv.Trail:\nhave %v\nwant %v", have, want)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("null.Drv.Trail[%d]:\nhave %s\nwant %s", i, have[i], want[i])
		}
	}
}

func TestSetAPI(t *testing.T) {
	h := newNull(t)
	if h.drv == nil || h.api == nil || h.sc == nil || h.fb == nil {
		t.Fatalf("h.SetAPI: incomplete tuple")
	}
	if h.test != nil {
		t.Fatalf("h.test:\nhave %v\nwant nil", h.test)
	}
	if err := h.SetTest(driver.StreamingVB); err != nil {
		t.Fatalf("h.SetTest:\nhave %v\nwant nil", err)
	}
	// Replacing the backend must tear down the whole tuple,
	// innermost first, before the new one comes up, and then
	// re-create the active test case.
	if err := h.SetAPI("null"); err != nil {
		t.Fatalf("h.SetAPI:\nhave %v\nwant nil", err)
	}
	if h.test == nil {
		t.Fatalf("h.test:\nhave nil\nwant non-nil")
	}
	checkTrail(t,
		"open", "swapchain", "test StreamingVB",
		"destroy test StreamingVB", "destroy framebuf",
		"destroy swapchain", "destroy api", "close",
		"open", "swapchain", "test StreamingVB")
	// The empty name tears down and stops there.
	if err := h.SetAPI(""); err != nil {
		t.Fatalf("h.SetAPI:\nhave %v\nwant nil", err)
	}
	if h.drv != nil || h.api != nil || h.sc != nil || h.fb != nil || h.test != nil {
		t.Fatalf("h.SetAPI(\"\"): non-empty tuple")
	}
	checkTrail(t,
		"open", "swapchain", "test StreamingVB",
		"destroy test StreamingVB", "destroy framebuf",
		"destroy swapchain", "destroy api", "close",
		"open", "swapchain", "test StreamingVB",
		"destroy test StreamingVB", "destroy framebuf",
		"destroy swapchain", "destroy api", "close")
}

func TestSetAPIUnknown(t *testing.T) {
	h := newNull(t)
	err := h.SetAPI("nosuch")
	if err != errNoDriver {
		t.Fatalf("h.SetAPI:\nhave %v\nwant %v", err, errNoDriver)
	}
	// The old tuple is gone regardless.
	if h.drv != nil || h.api != nil || h.sc != nil || h.fb != nil {
		t.Fatalf("h.SetAPI: non-empty tuple after failure")
	}
	checkTrail(t,
		"open", "swapchain",
		"destroy framebuf", "destroy swapchain",
		"destroy api", "close")
}

func TestSetAPIFailures(t *testing.T) {
	null.Drv.Reset()
	h := &Harness{}
	null.Drv.FailOpen = true
	if err := h.SetAPI("null"); err != driver.ErrNoDevice {
		t.Fatalf("h.SetAPI:\nhave %v\nwant %v", err, driver.ErrNoDevice)
	}
	if h.drv != nil || h.api != nil {
		t.Fatalf("h.SetAPI: non-empty tuple after open failure")
	}
	null.Drv.Reset()
	api, err := null.Drv.Open()
	if err != nil {
		t.Fatalf("null.Drv.Open:\nhave %v\nwant nil", err)
	}
	api.(*null.API).FailSwapchain = true
	null.Drv.Trail = nil
	if err := h.SetAPI("null"); err != driver.ErrWindow {
		t.Fatalf("h.SetAPI:\nhave %v\nwant %v", err, driver.ErrWindow)
	}
	if h.drv != nil || h.api != nil || h.sc != nil || h.fb != nil {
		t.Fatalf("h.SetAPI: non-empty tuple after swapchain failure")
	}
	checkTrail(t, "open", "swapchain fail", "destroy api", "close")
}

func TestSetTest(t *testing.T) {
	h := newNull(t)
	null.Drv.Trail = nil
	if err := h.SetTest(driver.CubesUniform); err != nil {
		t.Fatalf("h.SetTest:\nhave %v\nwant nil", err)
	}
	if err := h.SetTest(driver.StreamingVB); err != nil {
		t.Fatalf("h.SetTest:\nhave %v\nwant nil", err)
	}
	checkTrail(t,
		"test CubesUniform",
		"destroy test CubesUniform",
		"test StreamingVB")
	api := h.api.(*null.API)
	api.FailTest = true
	if err := h.SetTest(driver.CubesUniform); err != driver.ErrNoTest {
		t.Fatalf("h.SetTest:\nhave %v\nwant %v", err, driver.ErrNoTest)
	}
	if h.test != nil {
		t.Fatalf("h.test:\nhave %v\nwant nil", h.test)
	}
	if h.testID != driver.CubesUniform {
		t.Fatalf("h.testID:\nhave %v\nwant %v", h.testID, driver.CubesUniform)
	}
	api.FailTest = false
	api.FailInit = true
	if err := h.SetTest(driver.CubesUniform); err == nil {
		t.Fatalf("h.SetTest:\nhave nil\nwant non-nil")
	}
	if h.test != nil {
		t.Fatalf("h.test:\nhave %v\nwant nil", h.test)
	}
	api.FailInit = false
	if err := h.SetTest(driver.CubesUniform); err != nil {
		t.Fatalf("h.SetTest:\nhave %v\nwant nil", err)
	}
}

func TestSetTestNoAPI(t *testing.T) {
	h := &Harness{}
	if err := h.SetTest(driver.StreamingVB); err != errNoDriver {
		t.Fatalf("h.SetTest:\nhave %v\nwant %v", err, errNoDriver)
	}
}

func TestRenderStreaming(t *testing.T) {
	h := newNull(t)
	h.fps.report = func(float64) {}
	// No test case yet; rendering is a no-op.
	h.render()
	if n := h.fps.frames; n != 0 {
		t.Fatalf("h.fps.frames:\nhave %d\nwant 0", n)
	}
	if err := h.SetTest(driver.StreamingVB); err != nil {
		t.Fatalf("h.SetTest:\nhave %v\nwant nil", err)
	}
	h.render()
	tc := h.api.(*null.API).LastTest
	if tc.Begins != 1 || tc.Ends != 1 {
		t.Fatalf("begin/end:\nhave %d/%d\nwant 1/1", tc.Begins, tc.Ends)
	}
	if tc.Draws != quadCount {
		t.Fatalf("tc.Draws:\nhave %d\nwant %d", tc.Draws, quadCount)
	}
	if tc.Verts != quadCount*6 {
		t.Fatalf("tc.Verts:\nhave %d\nwant %d", tc.Verts, quadCount*6)
	}
	if tc.MinBatch != 6 || tc.MaxBatch != 6 {
		t.Fatalf("batch:\nhave %d/%d\nwant 6/6", tc.MinBatch, tc.MaxBatch)
	}
	if tc.BadCalls != 0 {
		t.Fatalf("tc.BadCalls:\nhave %d\nwant 0", tc.BadCalls)
	}
	if n := h.sc.(*null.Swapchain).Presents; n != 1 {
		t.Fatalf("sc.Presents:\nhave %d\nwant 1", n)
	}
	// A refused Begin drops the frame entirely.
	tc.SkipFrames = 1
	frames := h.fps.frames
	h.render()
	if tc.Begins != 1 || tc.Draws != quadCount {
		t.Fatalf("skipped frame drew:\nhave %d/%d\nwant 1/%d", tc.Begins, tc.Draws, quadCount)
	}
	if h.fps.frames != frames {
		t.Fatalf("h.fps.frames:\nhave %d\nwant %d", h.fps.frames, frames)
	}
}

func TestRenderCubes(t *testing.T) {
	h := newNull(t)
	h.fps.report = func(float64) {}
	if err := h.SetTest(driver.CubesUniform); err != nil {
		t.Fatalf("h.SetTest:\nhave %v\nwant nil", err)
	}
	h.render()
	tc := h.api.(*null.API).LastTest
	const n = gridExtent * gridExtent * gridExtent
	if tc.Draws != n || tc.Mats != n {
		t.Fatalf("draws/mats:\nhave %d/%d\nwant %d/%d", tc.Draws, tc.Mats, n, n)
	}
	if len(h.transforms) != n {
		t.Fatalf("len(h.transforms):\nhave %d\nwant %d", len(h.transforms), n)
	}
	// The grid is built once, shared by both cube tests.
	p := &h.transforms[0]
	if err := h.SetTest(driver.CubesDynamicBuffer); err != nil {
		t.Fatalf("h.SetTest:\nhave %v\nwant nil", err)
	}
	h.render()
	if &h.transforms[0] != p {
		t.Fatalf("h.transforms: rebuilt")
	}
}

func TestTransformGrid(t *testing.T) {
	var h Harness
	h.buildTransforms()
	const n = gridExtent
	if len(h.transforms) != n*n*n {
		t.Fatalf("len(h.transforms):\nhave %d\nwant %d", len(h.transforms), n*n*n)
	}
	for _, c := range [][3]int{{0, 0, 0}, {1, 2, 3}, {31, 32, 33}, {63, 63, 63}} {
		x, y, z := c[0], c[1], c[2]
		m := &h.transforms[(x*n+y)*n+z]
		want := linear.V4{float32(x) - 32, float32(y) - 32, float32(z) - 32, 1}
		if m[3] != want {
			t.Fatalf("m[3]:\nhave %v\nwant %v", m[3], want)
		}
		if m[0] != (linear.V4{1, 0, 0, 0}) || m[1] != (linear.V4{0, 1, 0, 0}) || m[2] != (linear.V4{0, 0, 1, 0}) {
			t.Fatalf("transform %v is not a pure translation", c)
		}
	}
}

// quadRecorder captures every streamed vertex.
type quadRecorder struct{ verts []driver.VertexPos2 }

func (*quadRecorder) Init() error { return nil }
func (*quadRecorder) Begin(wsi.Window, driver.Swapchain, driver.Framebuf) bool {
	return true
}
func (*quadRecorder) End(driver.Swapchain) {}
func (*quadRecorder) Destroy()             {}
func (r *quadRecorder) Draw(v []driver.VertexPos2) {
	r.verts = append(r.verts, v...)
}

func TestQuadStream(t *testing.T) {
	var h Harness
	var rec quadRecorder
	h.drawQuads(&rec)
	if len(rec.verts) != quadCount*6 {
		t.Fatalf("len(rec.verts):\nhave %d\nwant %d", len(rec.verts), quadCount*6)
	}
	// Two CCW triangles per quad.
	quad := func(i int, x, y float32) {
		const w, h = quadWidth, quadHeight
		want := [6]driver.VertexPos2{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x, Y: y + h},
			{X: x + w, Y: y}, {X: x, Y: y + h}, {X: x + w, Y: y + h},
		}
		for j, v := range rec.verts[i*6 : i*6+6] {
			if v != want[j] {
				t.Fatalf("quad %d vertex %d:\nhave %v\nwant %v", i, j, v, want[j])
			}
		}
	}
	quad(0, 1, 1)
	quad(1, 3, 1)
	// 500 quads fit before x passes the row limit.
	quad(499, 999, 1)
	quad(500, 1, 3)
	quad(quadCount-1, 999, 1+(quadCount/500-1)*2)
}

func TestFPS(t *testing.T) {
	var have []float64
	c := fpsCounter{report: func(fps float64) { have = append(have, fps) }}
	const tick = 400e6 // 0.4s in ticks
	for i := 1; i <= 6; i++ {
		c.frame(uint64(i) * tick)
	}
	// Reports fire at 1.2s and 2.4s, three frames each.
	fps := 3 / timer.ToSec(3*tick)
	want := []float64{fps, fps}
	if len(have) != len(want) {
		t.Fatalf("reports:\nhave %v\nwant %v", have, want)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("reports[%d]:\nhave %v\nwant %v", i, have[i], want[i])
		}
	}
	if c.frames != 0 {
		t.Fatalf("c.frames:\nhave %d\nwant 0", c.frames)
	}
}

func TestKeys(t *testing.T) {
	h := newNull(t)
	h.fps.report = func(float64) {}
	h.KeyboardKey(wsi.KeyF1, true, 0)
	if h.testID != driver.StreamingVB {
		t.Fatalf("h.testID:\nhave %v\nwant %v", h.testID, driver.StreamingVB)
	}
	h.KeyboardKey(wsi.KeyF2, true, 0)
	if h.testID != driver.CubesUniform {
		t.Fatalf("h.testID:\nhave %v\nwant %v", h.testID, driver.CubesUniform)
	}
	h.KeyboardKey(wsi.KeyF3, true, 0)
	if h.testID != driver.CubesDynamicBuffer {
		t.Fatalf("h.testID:\nhave %v\nwant %v", h.testID, driver.CubesDynamicBuffer)
	}
	// Releases are ignored.
	h.KeyboardKey(wsi.KeyF1, false, 0)
	if h.testID != driver.CubesDynamicBuffer {
		t.Fatalf("h.testID:\nhave %v\nwant %v", h.testID, driver.CubesDynamicBuffer)
	}
	h.KeyboardKey(wsi.KeyEsc, true, 0)
	if !h.quit {
		t.Fatalf("h.quit:\nhave false\nwant true")
	}
	h.Cleanup()
	if h.drv != nil || h.win != nil {
		t.Fatalf("h.Cleanup: left state behind")
	}
}

func TestNewHeadless(t *testing.T) {
	if wsi.PlatformInUse() != wsi.None {
		t.Skip("wsi platform available")
	}
	if _, err := New(Config{}); err == nil {
		t.Fatalf("New:\nhave nil\nwant non-nil")
	}
}
