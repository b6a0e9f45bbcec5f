// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package harness

import (
	"github.com/gviegas/apitest/driver"
	"github.com/gviegas/apitest/linear"
)

// Streaming workload: unit quads tiled row by row, one
// Draw call per quad.
const (
	quadCount   = 160000
	quadWidth   = 1
	quadHeight  = 1
	quadSpacing = 1
	rowLimit    = 1000
)

// Transform workload: a cube of cubes, 64 per axis,
// centered on the origin.
const gridExtent = 64

// drawQuads feeds t one six-vertex quad per call,
// quadCount times. Coordinates restart at the left edge
// whenever x passes rowLimit.
func (h *Harness) drawQuads(t driver.StreamingTest) {
	x := float32(quadSpacing)
	y := float32(quadSpacing)
	var v [6]driver.VertexPos2
	for i := 0; i < quadCount; i++ {
		v[0] = driver.VertexPos2{X: x, Y: y}
		v[1] = driver.VertexPos2{X: x + quadWidth, Y: y}
		v[2] = driver.VertexPos2{X: x, Y: y + quadHeight}
		v[3] = driver.VertexPos2{X: x + quadWidth, Y: y}
		v[4] = driver.VertexPos2{X: x, Y: y + quadHeight}
		v[5] = driver.VertexPos2{X: x + quadWidth, Y: y + quadHeight}
		t.Draw(v[:])
		x += quadWidth + quadSpacing
		if x > rowLimit {
			x = quadSpacing
			y += quadHeight + quadSpacing
		}
	}
}

// drawCubes feeds t the whole transform grid.
// The grid is immutable and built on first use only.
func (h *Harness) drawCubes(t driver.CubesTest) {
	h.transformOnce.Do(h.buildTransforms)
	t.Draw(h.transforms)
}

func (h *Harness) buildTransforms() {
	const n = gridExtent
	h.transforms = make([]linear.M4, n*n*n)
	i := 0
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				h.transforms[i].Translate(float32(x)-n/2, float32(y)-n/2, float32(z)-n/2)
				i++
			}
		}
	}
}
