// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"unsafe"

	"github.com/chewxy/math32"

	"github.com/gviegas/apitest/driver"
	"github.com/gviegas/apitest/linear"
	"github.com/gviegas/apitest/wsi"
)

const cubesUniformVS = `#version 330 core
layout(location = 0) in vec3 in_pos;
uniform mat4 u_vp;
uniform mat4 u_model;
void main() {
	gl_Position = u_vp * (u_model * vec4(in_pos, 1.0));
}
`

const cubesDynbufVS = `#version 330 core
layout(location = 0) in vec3 in_pos;
uniform mat4 u_vp;
layout(std140) uniform Model {
	mat4 u_model;
};
void main() {
	gl_Position = u_vp * (u_model * vec4(in_pos, 1.0));
}
`

const cubesFS = `#version 330 core
out vec4 out_color;
void main() {
	out_color = vec4(0.0, 0.64, 0.91, 1.0);
}
`

// Unit cube centered at the origin.
var cubeVerts = [...]float32{
	-0.5, -0.5, -0.5,
	+0.5, -0.5, -0.5,
	+0.5, +0.5, -0.5,
	-0.5, +0.5, -0.5,
	-0.5, -0.5, +0.5,
	+0.5, -0.5, +0.5,
	+0.5, +0.5, +0.5,
	-0.5, +0.5, +0.5,
}

var cubeIndices = [...]uint16{
	0, 2, 1, 0, 3, 2,
	4, 5, 6, 4, 6, 7,
	0, 1, 5, 0, 5, 4,
	3, 6, 2, 3, 7, 6,
	0, 7, 3, 0, 4, 7,
	1, 2, 6, 1, 6, 5,
}

const matrixSize = unsafe.Sizeof(linear.M4{})

// Capacity of the dynamic transform buffer.
const dynbufCap = 16 << 20

// cubes implements driver.CubesTest.
// The uniform variant binds each transform with a
// UniformMatrix4fv call between draws; the dynamic variant
// writes it into a rolling slice of a uniform buffer and
// rebinds the range.
type cubes struct {
	fn      *procs
	dynamic bool
	prog    uint32
	vao     uint32
	vbo     uint32
	ibo     uint32
	ubo     uint32
	stride  uintptr
	slots   int
	slot    int
	vpLoc   int32
	mdlLoc  int32
	vp      linear.M4
}

// Init allocates the pipeline and the cube mesh.
func (t *cubes) Init() error {
	if !t.fn.loaded {
		return errNotReady
	}
	vs := cubesUniformVS
	if t.dynamic {
		vs = cubesDynbufVS
	}
	prog, err := t.fn.linkProgram(vs, cubesFS)
	if err != nil {
		return err
	}
	t.prog = prog
	t.vpLoc = t.fn.uniformLocation(prog, "u_vp")
	t.fn.GenVertexArrays(1, &t.vao)
	t.fn.BindVertexArray(t.vao)
	t.fn.GenBuffers(1, &t.vbo)
	t.fn.BindBuffer(glArrayBuffer, t.vbo)
	t.fn.BufferData(glArrayBuffer, unsafe.Sizeof(cubeVerts), unsafe.Pointer(&cubeVerts[0]), glStaticDraw)
	t.fn.VertexAttribPointer(0, 3, glFloat, glFalse, 12, 0)
	t.fn.EnableVertexAttribArray(0)
	t.fn.GenBuffers(1, &t.ibo)
	t.fn.BindBuffer(glElementBuffer, t.ibo)
	t.fn.BufferData(glElementBuffer, unsafe.Sizeof(cubeIndices), unsafe.Pointer(&cubeIndices[0]), glStaticDraw)
	if t.dynamic {
		var align int32
		t.fn.GetIntegerv(glUniformOffAlign, &align)
		t.stride = matrixSize
		if a := uintptr(align); a > t.stride {
			t.stride = a
		}
		t.slots = int(dynbufCap / t.stride)
		t.fn.GenBuffers(1, &t.ubo)
		t.fn.BindBuffer(glUniformBuffer, t.ubo)
		t.fn.BufferData(glUniformBuffer, dynbufCap, nil, glDynamicDraw)
		idx := t.fn.GetUniformBlockIndex(prog, &cstr("Model")[0])
		t.fn.UniformBlockBinding(prog, idx, 0)
	} else {
		t.mdlLoc = t.fn.uniformLocation(prog, "u_model")
	}
	return nil
}

// Begin clears the target and binds the per-frame state.
func (t *cubes) Begin(win wsi.Window, sc driver.Swapchain, fb driver.Framebuf) bool {
	if !t.fn.loaded || win == nil {
		return false
	}
	w, h := int32(win.Width()), int32(win.Height())
	if w <= 0 || h <= 0 {
		return false
	}
	t.fn.Viewport(0, 0, w, h)
	t.fn.Enable(glDepthTest)
	t.fn.ClearColor(0, 0, 0.1, 1)
	t.fn.ClearDepth(1)
	t.fn.Clear(glColorBufferBit | glDepthBufferBit)
	t.fn.UseProgram(t.prog)
	t.fn.BindVertexArray(t.vao)

	var proj, view linear.M4
	proj.Perspective(math32.Pi/3, float32(w)/float32(h), 1, 500)
	center := linear.V3{0, 0, 0}
	eye := linear.V3{0, 0, 100}
	up := linear.V3{0, 1, 0}
	view.LookAt(&center, &eye, &up)
	t.vp.Mul(&view, &proj)
	t.fn.UniformMatrix4fv(t.vpLoc, 1, glFalse, &t.vp[0][0])

	if t.dynamic {
		t.fn.BindBuffer(glUniformBuffer, t.ubo)
		t.fn.BufferData(glUniformBuffer, dynbufCap, nil, glDynamicDraw)
		t.slot = 0
	}
	return true
}

// Draw issues one draw per transform.
func (t *cubes) Draw(transforms []linear.M4) {
	nidx := int32(len(cubeIndices))
	if t.dynamic {
		for i := range transforms {
			if t.slot == t.slots {
				t.fn.BufferData(glUniformBuffer, dynbufCap, nil, glDynamicDraw)
				t.slot = 0
			}
			off := uintptr(t.slot) * t.stride
			t.fn.BufferSubData(glUniformBuffer, off, matrixSize, unsafe.Pointer(&transforms[i]))
			t.fn.BindBufferRange(glUniformBuffer, 0, t.ubo, off, matrixSize)
			t.fn.DrawElements(glTriangles, nidx, glUnsignedShort, 0)
			t.slot++
		}
		return
	}
	for i := range transforms {
		t.fn.UniformMatrix4fv(t.mdlLoc, 1, glFalse, &transforms[i][0][0])
		t.fn.DrawElements(glTriangles, nidx, glUnsignedShort, 0)
	}
}

// End presents the frame.
func (t *cubes) End(sc driver.Swapchain) {
	sc.Present()
}

// Destroy releases the pipeline and mesh.
func (t *cubes) Destroy() {
	if !t.fn.loaded {
		return
	}
	if t.ubo != 0 {
		t.fn.DeleteBuffers(1, &t.ubo)
	}
	if t.ibo != 0 {
		t.fn.DeleteBuffers(1, &t.ibo)
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
	*t = cubes{fn: t.fn, dynamic: t.dynamic}
}
