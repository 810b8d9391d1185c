//go:build windows

package windows

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/timeouts"
)

// WindowsAPI implements the capability interfaces with real Win32 calls
type WindowsAPI struct {
	log logger.LoggerInterface
}

// NewWindowsAPI creates the production implementation of every capability
func NewWindowsAPI(log logger.LoggerInterface) *WindowsAPI {
	return &WindowsAPI{log: log}
}

func (w *WindowsAPI) FindWindow(className, caption string) uintptr {
	return FindWindow(className, caption)
}

func (w *WindowsAPI) ChildWindows(hwnd uintptr) []uintptr {
	return ChildWindows(hwnd)
}

func (w *WindowsAPI) ClassName(hwnd uintptr) string {
	return GetClassName(hwnd)
}

func (w *WindowsAPI) WindowText(hwnd uintptr) string {
	return GetWindowText(hwnd)
}

func (w *WindowsAPI) ControlText(hwnd uintptr) (string, bool) {
	return GetControlText(hwnd)
}

func (w *WindowsAPI) SetControlText(hwnd uintptr, text string) bool {
	ok := SetControlText(hwnd, text)
	if !ok {
		w.log.Debug("WM_SETTEXT failed", slog.Uint64("hwnd", uint64(hwnd)))
	}

	return ok
}

func (w *WindowsAPI) ClickButton(hwnd uintptr) bool {
	w.log.Debug("Sending BM_CLICK", slog.Uint64("hwnd", uint64(hwnd)))
	return ClickButton(hwnd)
}

func (w *WindowsAPI) IsWindow(hwnd uintptr) bool {
	return IsWindow(hwnd)
}

func (w *WindowsAPI) WindowRect(hwnd uintptr) (Rect, bool) {
	return GetWindowRect(hwnd)
}

func (w *WindowsAPI) WindowPid(hwnd uintptr) uint32 {
	return GetWindowPid(hwnd)
}

func (w *WindowsAPI) IsResponsive(hwnd uintptr) bool {
	return IsResponsive(hwnd, uint32(timeouts.ResponsiveProbeTimeout/time.Millisecond))
}

func (w *WindowsAPI) EnumerateWindows() []WindowInfo {
	return EnumerateWindows()
}

func (w *WindowsAPI) CollectChildInfos(hwnd uintptr) []ChildInfo {
	return CollectChildInfos(hwnd)
}

func (w *WindowsAPI) IsElevated() bool {
	return IsElevated()
}

// SetForeground restores a minimised window and brings it to the foreground
func (w *WindowsAPI) SetForeground(hwnd uintptr) bool {
	ret, _, _ := procShowWindow.Call(hwnd, uintptr(SW_RESTORE))
	w.log.Debug("ShowWindow(SW_RESTORE)", slog.Uint64("ret", uint64(ret)))

	ret, _, err := procSetForegroundWindow.Call(hwnd)
	if ret == 0 {
		w.log.Debug("SetForegroundWindow failed", slog.Any("error", err))
		return false
	}

	// Give it a moment and verify
	time.Sleep(timeouts.WindowMessageDelay)
	fgHwnd, _, _ := procGetForegroundWindow.Call()
	if fgHwnd != hwnd {
		w.log.Warn("Different window in foreground",
			slog.Uint64("expected", uint64(hwnd)),
			slog.Uint64("got", uint64(fgHwnd)),
		)
	}

	return true
}

func (w *WindowsAPI) PixelColor(x, y int32) (color.RGBA, error) {
	return GetPixelColor(x, y)
}

func (w *WindowsAPI) CursorPos() (Point, error) {
	return GetCursorPos()
}

func (w *WindowsAPI) MoveTo(p Point) error {
	return SetCursorPos(p.X, p.Y)
}

// ClickAt moves the pointer to p and clicks the left button there
func (w *WindowsAPI) ClickAt(p Point) error {
	if err := SetCursorPos(p.X, p.Y); err != nil {
		return err
	}

	LeftClick()
	return nil
}

func (w *WindowsAPI) SendHotkey(combo string) error {
	keys, err := ParseHotkey(combo)
	if err != nil {
		return err
	}

	if !SendKeyCombo(keys...) {
		return fmt.Errorf("failed to send hotkey %q", combo)
	}

	w.log.Debug("Hotkey sent", slog.String("combo", combo))
	return nil
}
