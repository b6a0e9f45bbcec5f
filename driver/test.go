// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gviegas/apitest/linear"
	"github.com/gviegas/apitest/wsi"
)

// TestID identifies a test case that drivers may implement.
type TestID int

// Test cases.
// The zero value is CubesDynamicBuffer, the workload the
// benchmark starts with.
const (
	// CubesDynamicBuffer issues one draw per cube, delivering
	// the per-cube transform through a dynamic buffer slice.
	CubesDynamicBuffer TestID = iota

	// CubesUniform issues one draw per cube, delivering the
	// per-cube transform through a uniform update.
	CubesUniform

	// StreamingVB streams CPU-generated vertex data every
	// frame and issues one draw per small batch.
	StreamingVB
)

// String returns the name of the test case.
func (id TestID) String() string {
	switch id {
	case StreamingVB:
		return "StreamingVB"
	case CubesUniform:
		return "CubesUniform"
	case CubesDynamicBuffer:
		return "CubesDynamicBuffer"
	}
	return "<invalid TestID>"
}

// Category is the kind of input a test case consumes.
// The harness selects the per-frame input generator from
// the category alone, never from the concrete type of a
// test case.
type Category int

// Categories.
const (
	// CatStreaming consumes streamed 2D vertices.
	CatStreaming Category = iota

	// CatCubes consumes per-cube transforms.
	CatCubes
)

// Category returns the input category of the test case.
func (id TestID) Category() Category {
	if id == StreamingVB {
		return CatStreaming
	}
	return CatCubes
}

// VertexPos2 is a 2D position vertex.
type VertexPos2 struct {
	X, Y float32
}

// TestCase is the interface common to all workloads.
// The usage is as follows: Init once after creation, then
// per frame a single Begin, any number of calls to the
// workload-specific draw method, and a single End.
// Destroy must be called before the API that created the
// test case is destroyed, and before a test case of a
// different API is created.
type TestCase interface {
	Destroyer

	// Init allocates the GPU resources of the workload
	// (pipelines, programs, persistent buffers).
	Init() error

	// Begin binds fb as the frame's target and sets
	// per-frame state.
	// It returns false when the frame is not acquirable;
	// the caller must then drop the frame, calling
	// neither the draw method nor End.
	Begin(win wsi.Window, sc Swapchain, fb Framebuf) bool

	// End finalizes the frame and presents sc.
	End(sc Swapchain)
}

// StreamingTest is the contract of the StreamingVB workload.
type StreamingTest interface {
	TestCase

	// Draw appends verts into a dynamic vertex buffer and
	// issues one draw covering them.
	// len(verts) must be a multiple of 3; the triangles
	// are CCW wound.
	// How the append reaches the GPU (map-discard, ring
	// buffer, per-draw upload) is the backend's choice:
	// that choice is the measurement.
	Draw(verts []VertexPos2)
}

// CubesTest is the contract of the CubesUniform and
// CubesDynamicBuffer workloads.
type CubesTest interface {
	TestCase

	// Draw issues len(transforms) draws of the shared unit
	// cube mesh, one per transform.
	// The transforms slice is immutable; implementations
	// must not retain it past the call unless they treat
	// it as read-only.
	Draw(transforms []linear.M4)
}
