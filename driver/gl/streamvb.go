// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"unsafe"

	"github.com/gviegas/apitest/driver"
	"github.com/gviegas/apitest/wsi"
)

const streamVS = `#version 330 core
layout(location = 0) in vec2 in_pos;
uniform vec2 u_viewport;
void main() {
	vec2 ndc = in_pos / u_viewport * 2.0 - 1.0;
	gl_Position = vec4(ndc.x, -ndc.y, 0.0, 1.0);
}
`

const streamFS = `#version 330 core
out vec4 out_color;
void main() {
	out_color = vec4(1.0, 0.58, 0.0, 1.0);
}
`

// Capacity of the streaming vertex buffer. The buffer is
// orphaned on overflow (and once per frame), which lets the
// driver hand out fresh storage instead of stalling on
// draws still reading the old one.
const streamCap = 8 << 20

const vertexSize = unsafe.Sizeof(driver.VertexPos2{})

// streamingVB implements driver.StreamingTest.
// Submission strategy: one dynamic buffer, orphan at frame
// start, per-draw BufferSubData append, one DrawArrays per
// batch.
type streamingVB struct {
	fn    *procs
	prog  uint32
	vao   uint32
	vbo   uint32
	vpLoc int32
	off   uintptr
}

// Init allocates the pipeline and the dynamic buffer.
func (t *streamingVB) Init() error {
	if !t.fn.loaded {
		return errNotReady
	}
	prog, err := t.fn.linkProgram(streamVS, streamFS)
	if err != nil {
		return err
	}
	t.prog = prog
	t.vpLoc = t.fn.uniformLocation(prog, "u_viewport")
	t.fn.GenVertexArrays(1, &t.vao)
	t.fn.BindVertexArray(t.vao)
	t.fn.GenBuffers(1, &t.vbo)
	t.fn.BindBuffer(glArrayBuffer, t.vbo)
	t.fn.BufferData(glArrayBuffer, streamCap, nil, glDynamicDraw)
	t.fn.VertexAttribPointer(0, 2, glFloat, glFalse, int32(vertexSize), 0)
	t.fn.EnableVertexAttribArray(0)
	return nil
}

// Begin clears the target and orphans the vertex buffer.
func (t *streamingVB) Begin(win wsi.Window, sc driver.Swapchain, fb driver.Framebuf) bool {
	if !t.fn.loaded || win == nil {
		return false
	}
	w, h := int32(win.Width()), int32(win.Height())
	if w <= 0 || h <= 0 {
		return false
	}
	t.fn.Viewport(0, 0, w, h)
	t.fn.Disable(glDepthTest)
	t.fn.Disable(glCullFace)
	t.fn.ClearColor(0, 0, 0.1, 1)
	t.fn.ClearDepth(1)
	t.fn.Clear(glColorBufferBit | glDepthBufferBit)
	t.fn.UseProgram(t.prog)
	t.fn.BindVertexArray(t.vao)
	t.fn.BindBuffer(glArrayBuffer, t.vbo)
	t.fn.Uniform2f(t.vpLoc, float32(w), float32(h))
	t.fn.BufferData(glArrayBuffer, streamCap, nil, glDynamicDraw)
	t.off = 0
	return true
}

// Draw appends verts and issues one draw covering them.
func (t *streamingVB) Draw(verts []driver.VertexPos2) {
	n := len(verts)
	if n == 0 {
		return
	}
	size := uintptr(n) * vertexSize
	if t.off+size > streamCap {
		t.fn.BufferData(glArrayBuffer, streamCap, nil, glDynamicDraw)
		t.off = 0
	}
	t.fn.BufferSubData(glArrayBuffer, t.off, size, unsafe.Pointer(&verts[0]))
	t.fn.DrawArrays(glTriangles, int32(t.off/vertexSize), int32(n))
	t.off += size
}

// End presents the frame.
func (t *streamingVB) End(sc driver.Swapchain) {
	sc.Present()
}

// Destroy releases the pipeline and buffer.
func (t *streamingVB) Destroy() {
	if !t.fn.loaded {
		return
	}
	if t.vbo != 0 {
		t.fn.DeleteBuffers(1, &t.vbo)
	}
	if t.vao != 0 {
		t.fn.DeleteVertexArrays(1, &t.vao)
	}
	if t.prog != 0 {
		t.fn.DeleteProgram(t.prog)
	}
	*t = streamingVB{fn: t.fn}
}
