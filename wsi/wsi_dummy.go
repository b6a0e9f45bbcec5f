// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"errors"
	"unsafe"
)

var errMissing = errors.New("no wsi implementation")

func initDummy() {
	newWindow = newWindowDummy
	dispatch = dispatchDummy
	setAppName = setAppNameDummy
	makeCurrent = makeCurrentDummy
	swapBuffers = swapBuffersDummy
	swapInterval = swapIntervalDummy
	procAddr = procAddrDummy
	platform = None
}

func newWindowDummy(int, int, string) (Window, error) {
	return nil, errMissing
}

func dispatchDummy()         {}
func setAppNameDummy(string) {}

func makeCurrentDummy(Window) error { return errMissing }
func swapBuffersDummy(Window) error { return errMissing }
func swapIntervalDummy(int) {}
func procAddrDummy(string) unsafe.Pointer { return nil }
