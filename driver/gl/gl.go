// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package gl implements the driver contract on top of an
// OpenGL 3.3 core context provided by wsi.
// Entry points are resolved at runtime through the context's
// loader, so the package needs no cgo of its own.
package gl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/gviegas/apitest/wsi"
)

// GL enumerants, limited to what the test cases use.
const (
	glColorBufferBit   = 0x00004000
	glDepthBufferBit   = 0x00000100
	glTriangles        = 0x0004
	glUnsignedShort    = 0x1403
	glFloat            = 0x1406
	glDepthTest        = 0x0B71
	glCullFace         = 0x0B44
	glArrayBuffer      = 0x8892
	glElementBuffer    = 0x8893
	glUniformBuffer    = 0x8A11
	glStaticDraw       = 0x88E4
	glDynamicDraw      = 0x88E8
	glFragmentShader   = 0x8B30
	glVertexShader     = 0x8B31
	glCompileStatus    = 0x8B81
	glLinkStatus       = 0x8B82
	glInfoLogLength    = 0x8B84
	glUniformOffAlign  = 0x8A34
	glFalse            = 0
)

// procs holds the resolved GL entry points.
// It is populated once per context by loadProcs.
type procs struct {
	ClearColor    func(r, g, b, a float32)
	ClearDepth    func(d float64)
	Clear         func(mask uint32)
	Viewport      func(x, y, w, h int32)
	Enable        func(capa uint32)
	Disable       func(capa uint32)
	GetError      func() uint32
	GetIntegerv   func(pname uint32, data *int32)

	GenBuffers      func(n int32, buffers *uint32)
	DeleteBuffers   func(n int32, buffers *uint32)
	BindBuffer      func(target, buffer uint32)
	BufferData      func(target uint32, size uintptr, data unsafe.Pointer, usage uint32)
	BufferSubData   func(target uint32, offset, size uintptr, data unsafe.Pointer)
	BindBufferRange func(target, index, buffer uint32, offset, size uintptr)

	GenVertexArrays    func(n int32, arrays *uint32)
	DeleteVertexArrays func(n int32, arrays *uint32)
	BindVertexArray    func(array uint32)

	CreateShader      func(xtype uint32) uint32
	ShaderSource      func(shader uint32, count int32, source **byte, length *int32)
	CompileShader     func(shader uint32)
	GetShaderiv       func(shader, pname uint32, params *int32)
	GetShaderInfoLog  func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	DeleteShader      func(shader uint32)
	CreateProgram     func() uint32
	AttachShader      func(program, shader uint32)
	LinkProgram       func(program uint32)
	GetProgramiv      func(program, pname uint32, params *int32)
	GetProgramInfoLog func(program uint32, bufSize int32, length *int32, infoLog *byte)
	UseProgram        func(program uint32)
	DeleteProgram     func(program uint32)

	GetUniformLocation   func(program uint32, name *byte) int32
	GetUniformBlockIndex func(program uint32, name *byte) uint32
	UniformBlockBinding  func(program, index, binding uint32)
	Uniform2f            func(location int32, v0, v1 float32)
	UniformMatrix4fv     func(location, count int32, transpose uint32, value *float32)

	VertexAttribPointer     func(index uint32, size int32, xtype uint32, normalized uint32, stride int32, pointer uintptr)
	EnableVertexAttribArray func(index uint32)

	DrawArrays   func(mode uint32, first, count int32)
	DrawElements func(mode uint32, count int32, xtype uint32, indices uintptr)

	loaded bool
}

var errNoProc = errors.New("gl: missing entry point")

// loadProcs resolves every entry point in p through the
// current context. It fails if any is missing.
func (p *procs) loadProcs() error {
	reg := func(fptr any, name string) error {
		addr := wsi.ProcAddr(name)
		if addr == nil {
			return fmt.Errorf("%w: %s", errNoProc, name)
		}
		purego.RegisterFunc(fptr, uintptr(addr))
		return nil
	}
	for _, x := range []struct {
		fptr any
		name string
	}{
		{&p.ClearColor, "glClearColor"},
		{&p.ClearDepth, "glClearDepth"},
		{&p.Clear, "glClear"},
		{&p.Viewport, "glViewport"},
		{&p.Enable, "glEnable"},
		{&p.Disable, "glDisable"},
		{&p.GetError, "glGetError"},
		{&p.GetIntegerv, "glGetIntegerv"},
		{&p.GenBuffers, "glGenBuffers"},
		{&p.DeleteBuffers, "glDeleteBuffers"},
		{&p.BindBuffer, "glBindBuffer"},
		{&p.BufferData, "glBufferData"},
		{&p.BufferSubData, "glBufferSubData"},
		{&p.BindBufferRange, "glBindBufferRange"},
		{&p.GenVertexArrays, "glGenVertexArrays"},
		{&p.DeleteVertexArrays, "glDeleteVertexArrays"},
		{&p.BindVertexArray, "glBindVertexArray"},
		{&p.CreateShader, "glCreateShader"},
		{&p.ShaderSource, "glShaderSource"},
		{&p.CompileShader, "glCompileShader"},
		{&p.GetShaderiv, "glGetShaderiv"},
		{&p.GetShaderInfoLog, "glGetShaderInfoLog"},
		{&p.DeleteShader, "glDeleteShader"},
		{&p.CreateProgram, "glCreateProgram"},
		{&p.AttachShader, "glAttachShader"},
		{&p.LinkProgram, "glLinkProgram"},
		{&p.GetProgramiv, "glGetProgramiv"},
		{&p.GetProgramInfoLog, "glGetProgramInfoLog"},
		{&p.UseProgram, "glUseProgram"},
		{&p.DeleteProgram, "glDeleteProgram"},
		{&p.GetUniformLocation, "glGetUniformLocation"},
		{&p.GetUniformBlockIndex, "glGetUniformBlockIndex"},
		{&p.UniformBlockBinding, "glUniformBlockBinding"},
		{&p.Uniform2f, "glUniform2f"},
		{&p.UniformMatrix4fv, "glUniformMatrix4fv"},
		{&p.VertexAttribPointer, "glVertexAttribPointer"},
		{&p.EnableVertexAttribArray, "glEnableVertexAttribArray"},
		{&p.DrawArrays, "glDrawArrays"},
		{&p.DrawElements, "glDrawElements"},
	} {
		if err := reg(x.fptr, x.name); err != nil {
			*p = procs{}
			return err
		}
	}
	p.loaded = true
	return nil
}

// cstr returns s as a NUL-terminated byte slice.
func cstr(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
