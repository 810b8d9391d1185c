//go:build windows

package windows

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/Norgate-AV/comdlg/internal/timeouts"
)

// GetCursorPos returns the current pointer position in screen coordinates
func GetCursorPos() (Point, error) {
	var p Point

	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if ret == 0 {
		return Point{}, fmt.Errorf("GetCursorPos failed: %v", err)
	}

	return p, nil
}

// SetCursorPos moves the pointer to screen coordinates
func SetCursorPos(x, y int32) error {
	ret, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if ret == 0 {
		return fmt.Errorf("SetCursorPos(%d, %d) failed: %v", x, y, err)
	}

	return nil
}

// LeftClick presses and releases the left button at the current pointer position
func LeftClick() {
	procMouseEvent.Call(MOUSEEVENTF_LEFTDOWN, 0, 0, 0, 0)
	time.Sleep(timeouts.KeystrokeDelay)
	procMouseEvent.Call(MOUSEEVENTF_LEFTUP, 0, 0, 0, 0)
}
