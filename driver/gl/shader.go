// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"fmt"
)

// compileShader compiles a single shader stage.
func (p *procs) compileShader(xtype uint32, src string) (uint32, error) {
	sh := p.CreateShader(xtype)
	if sh == 0 {
		return 0, fmt.Errorf("gl: CreateShader failed (0x%x)", p.GetError())
	}
	b := cstr(src)
	ptr := &b[0]
	n := int32(len(src))
	p.ShaderSource(sh, 1, &ptr, &n)
	p.CompileShader(sh)
	var ok int32
	p.GetShaderiv(sh, glCompileStatus, &ok)
	if ok == glFalse {
		defer p.DeleteShader(sh)
		return 0, fmt.Errorf("gl: shader compilation failed: %s", p.shaderLog(sh))
	}
	return sh, nil
}

// linkProgram compiles both stages and links them.
func (p *procs) linkProgram(vsrc, fsrc string) (uint32, error) {
	vs, err := p.compileShader(glVertexShader, vsrc)
	if err != nil {
		return 0, err
	}
	defer p.DeleteShader(vs)
	fs, err := p.compileShader(glFragmentShader, fsrc)
	if err != nil {
		return 0, err
	}
	defer p.DeleteShader(fs)
	prog := p.CreateProgram()
	if prog == 0 {
		return 0, fmt.Errorf("gl: CreateProgram failed (0x%x)", p.GetError())
	}
	p.AttachShader(prog, vs)
	p.AttachShader(prog, fs)
	p.LinkProgram(prog)
	var ok int32
	p.GetProgramiv(prog, glLinkStatus, &ok)
	if ok == glFalse {
		defer p.DeleteProgram(prog)
		return 0, fmt.Errorf("gl: program link failed: %s", p.programLog(prog))
	}
	return prog, nil
}

func (p *procs) shaderLog(sh uint32) string {
	var n int32
	p.GetShaderiv(sh, glInfoLogLength, &n)
	if n <= 1 {
		return "<no log>"
	}
	buf := make([]byte, n)
	p.GetShaderInfoLog(sh, n, &n, &buf[0])
	return string(buf[:n])
}

func (p *procs) programLog(prog uint32) string {
	var n int32
	p.GetProgramiv(prog, glInfoLogLength, &n)
	if n <= 1 {
		return "<no log>"
	}
	buf := make([]byte, n)
	p.GetProgramInfoLog(prog, n, &n, &buf[0])
	return string(buf[:n])
}

// uniformLocation resolves a named uniform.
func (p *procs) uniformLocation(prog uint32, name string) int32 {
	b := cstr(name)
	return p.GetUniformLocation(prog, &b[0])
}
