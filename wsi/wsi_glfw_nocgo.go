// Copyright 2023 Gustavo C. Viegas. All rights reserved.

//go:build !cgo

package wsi

import "errors"

// initGLFW initializes the GLFW platform.
// GLFW requires cgo; without it, initialization always
// fails and wsi falls back to the dummy platform.
func initGLFW() error {
	return errors.New("wsi: glfw requires cgo")
}
