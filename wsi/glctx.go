// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"unsafe"
)

// GL context interop.
// Drivers that render through an OpenGL context use these
// to reach the platform's context machinery without
// depending on the platform package themselves.

// MakeContextCurrent makes win's GL context current on the
// calling thread. The caller is expected to be locked to
// an OS thread.
func MakeContextCurrent(win Window) error { return makeCurrent(win) }

var makeCurrent func(Window) error

// SwapBuffers presents the back buffer of win's GL context.
func SwapBuffers(win Window) error { return swapBuffers(win) }

var swapBuffers func(Window) error

// SwapInterval sets the swap interval of the current GL
// context. 0 disables vertical synchronization.
func SwapInterval(i int) { swapInterval(i) }

var swapInterval func(int)

// ProcAddr returns the address of the named GL function
// in the current context, or nil if unavailable.
func ProcAddr(name string) unsafe.Pointer { return procAddr(name) }

var procAddr func(string) unsafe.Pointer
