//go:build windows

package windows

import (
	"sync"
	"syscall"
)

var (
	foundWindows []WindowInfo
	windowsMu    sync.Mutex

	enumWindowsCallback = syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if IsWindowVisible(hwnd) {
			pid := GetWindowPid(hwnd)
			foundWindows = append(foundWindows, WindowInfo{
				Hwnd:    hwnd,
				Title:   GetWindowText(hwnd),
				Class:   GetClassName(hwnd),
				Pid:     pid,
				Process: GetProcessName(pid),
			})
		}

		return 1 // Continue enumeration
	})
)

// EnumerateWindows performs a thread-safe enumeration of visible top-level windows
func EnumerateWindows() []WindowInfo {
	windowsMu.Lock()
	defer windowsMu.Unlock()

	foundWindows = nil
	procEnumWindows.Call(enumWindowsCallback, 0)

	// Make a copy to avoid races with subsequent enumerations
	windows := make([]WindowInfo, len(foundWindows))
	copy(windows, foundWindows)

	return windows
}
