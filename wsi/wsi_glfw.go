// Copyright 2023 Gustavo C. Viegas. All rights reserved.

//go:build cgo

package wsi

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// initGLFW initializes the GLFW platform.
func initGLFW() (err error) {
	defer func() {
		if x := recover(); x != nil {
			err = errors.New("wsi: glfw initialization panicked")
		}
	}()
	if err = glfw.Init(); err != nil {
		return err
	}
	newWindow = newWindowGLFW
	dispatch = dispatchGLFW
	setAppName = setAppNameGLFW
	makeCurrent = makeCurrentGLFW
	swapBuffers = swapBuffersGLFW
	swapInterval = swapIntervalGLFW
	procAddr = procAddrGLFW
	platform = GLFW
	return nil
}

// windowGLFW implements Window.
type windowGLFW struct {
	win    *glfw.Window
	width  int
	height int
	title  string
	mapped bool
}

// newWindowGLFW creates a new window.
// The window is created hidden, with a GL context that
// context-based drivers may claim through the glctx
// functions.
func newWindowGLFW(width, height int, title string) (Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	if appName != "" {
		glfw.WindowHintString(glfw.X11ClassName, appName)
		glfw.WindowHintString(glfw.X11InstanceName, appName)
	}
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	w := &windowGLFW{
		win:    win,
		width:  width,
		height: height,
		title:  title,
	}
	win.SetCloseCallback(func(*glfw.Window) {
		if windowHandler != nil {
			windowHandler.WindowClose(w)
		}
	})
	win.SetSizeCallback(func(_ *glfw.Window, newWidth, newHeight int) {
		w.width = newWidth
		w.height = newHeight
		if windowHandler != nil {
			windowHandler.WindowResize(w, newWidth, newHeight)
		}
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if keyboardHandler == nil {
			return
		}
		if focused {
			keyboardHandler.KeyboardIn(w)
		} else {
			keyboardHandler.KeyboardOut(w)
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if keyboardHandler == nil || action == glfw.Repeat {
			return
		}
		keyboardHandler.KeyboardKey(keyFrom(key), action == glfw.Press, modifierFrom(mods))
	})
	return w, nil
}

// Map makes the window visible.
func (w *windowGLFW) Map() error {
	if !w.mapped {
		w.win.Show()
		w.mapped = true
	}
	return nil
}

// Unmap hides the window.
func (w *windowGLFW) Unmap() error {
	if w.mapped {
		w.win.Hide()
		w.mapped = false
	}
	return nil
}

// Resize resizes the window.
func (w *windowGLFW) Resize(width, height int) error {
	w.win.SetSize(width, height)
	w.width = width
	w.height = height
	return nil
}

// SetTitle sets the window's title.
func (w *windowGLFW) SetTitle(title string) error {
	w.win.SetTitle(title)
	w.title = title
	return nil
}

// Close closes the window.
func (w *windowGLFW) Close() {
	closeWindow(w)
	w.win.Destroy()
	*w = windowGLFW{}
}

// Width returns the window's width.
func (w *windowGLFW) Width() int { return w.width }

// Height returns the window's height.
func (w *windowGLFW) Height() int { return w.height }

// Title returns the window's title.
func (w *windowGLFW) Title() string { return w.title }

// dispatchGLFW dispatches queued events.
func dispatchGLFW() { glfw.PollEvents() }

// setAppNameGLFW updates the application name.
// It only affects windows created afterwards.
func setAppNameGLFW(string) {}

func makeCurrentGLFW(win Window) error {
	w, ok := win.(*windowGLFW)
	if !ok || w.win == nil {
		return errors.New("wsi: not a glfw window")
	}
	w.win.MakeContextCurrent()
	return nil
}

func swapBuffersGLFW(win Window) error {
	w, ok := win.(*windowGLFW)
	if !ok || w.win == nil {
		return errors.New("wsi: not a glfw window")
	}
	w.win.SwapBuffers()
	return nil
}

func swapIntervalGLFW(i int) { glfw.SwapInterval(i) }

func procAddrGLFW(name string) unsafe.Pointer { return glfw.GetProcAddress(name) }

// keyFrom translates a GLFW key code.
func keyFrom(key glfw.Key) Key {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return KeyA + Key(key-glfw.KeyA)
	case key >= glfw.Key0 && key <= glfw.Key9:
		return Key0 + Key(key-glfw.Key0)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return KeyF1 + Key(key-glfw.KeyF1)
	}
	switch key {
	case glfw.KeySpace:
		return KeySpace
	case glfw.KeyEnter:
		return KeyReturn
	case glfw.KeyEscape:
		return KeyEsc
	case glfw.KeyUp:
		return KeyUp
	case glfw.KeyDown:
		return KeyDown
	case glfw.KeyLeft:
		return KeyLeft
	case glfw.KeyRight:
		return KeyRight
	}
	return KeyUnknown
}

// modifierFrom translates GLFW modifier flags.
func modifierFrom(mods glfw.ModifierKey) (m Modifier) {
	if mods&glfw.ModShift != 0 {
		m |= ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= ModAlt
	}
	if mods&glfw.ModCapsLock != 0 {
		m |= ModCapsLock
	}
	return
}
