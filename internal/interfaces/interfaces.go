// Package interfaces defines the capabilities the dialog and viewer
// automation consumes, so tests can substitute fakes for Win32 and the browser.
package interfaces

import (
	"context"
	"image/color"

	"github.com/Norgate-AV/comdlg/internal/windows"
)

// WindowTree enumerates and describes native windows
type WindowTree interface {
	ChildWindows(hwnd uintptr) []uintptr
	ClassName(hwnd uintptr) string
	WindowText(hwnd uintptr) string
}

// WindowManager handles window queries and control messages
type WindowManager interface {
	WindowTree
	FindWindow(className, caption string) uintptr
	ControlText(hwnd uintptr) (string, bool)
	SetControlText(hwnd uintptr, text string) bool
	ClickButton(hwnd uintptr) bool
	IsWindow(hwnd uintptr) bool
	WindowRect(hwnd uintptr) (windows.Rect, bool)
	SetForeground(hwnd uintptr) bool
	IsElevated() bool
}

// ProcessWindows lists top-level windows and probes their owning thread
type ProcessWindows interface {
	EnumerateWindows() []windows.WindowInfo
	IsResponsive(hwnd uintptr) bool
}

// PixelSampler reads single screen pixels
type PixelSampler interface {
	PixelColor(x, y int32) (color.RGBA, error)
}

// PointerInjector moves and clicks the OS pointer
type PointerInjector interface {
	CursorPos() (windows.Point, error)
	MoveTo(p windows.Point) error
	ClickAt(p windows.Point) error
}

// KeyboardInjector sends synthetic key combinations to the foreground window
type KeyboardInjector interface {
	SendHotkey(combo string) error
}

// ElementBox is a page element's position and size in CSS pixels,
// relative to the top-left of the page viewport
type ElementBox struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ElementLocator reads the geometry of one page element and can click
// inside it without moving the OS pointer
type ElementLocator interface {
	Box(ctx context.Context) (ElementBox, error)
	ClickOffset(ctx context.Context, dx, dy float64) error
}
