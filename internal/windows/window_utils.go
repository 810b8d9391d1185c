//go:build windows

package windows

import (
	"fmt"
	"path/filepath"
	"syscall"
	"unsafe"
)

// ShellExecute executes a file using the Windows shell
func ShellExecute(hwnd uintptr, verb, file, args, cwd string, showCmd int) error {
	var verbPtr, filePtr, argsPtr, cwdPtr *uint16
	var err error

	if verb != "" {
		verbPtr, err = syscall.UTF16PtrFromString(verb)
		if err != nil {
			return err
		}
	}

	filePtr, err = syscall.UTF16PtrFromString(file)
	if err != nil {
		return err
	}

	if args != "" {
		argsPtr, err = syscall.UTF16PtrFromString(args)
		if err != nil {
			return err
		}
	}

	if cwd != "" {
		cwdPtr, err = syscall.UTF16PtrFromString(cwd)
		if err != nil {
			return err
		}
	}

	ret, _, _ := procShellExecute.Call(
		hwnd,
		uintptr(unsafe.Pointer(verbPtr)),
		uintptr(unsafe.Pointer(filePtr)),
		uintptr(unsafe.Pointer(argsPtr)),
		uintptr(unsafe.Pointer(cwdPtr)),
		uintptr(showCmd),
	)

	// ShellExecute returns a value > 32 on success
	if ret <= 32 {
		return fmt.Errorf("ShellExecute failed with error code: %d", ret)
	}

	return nil
}

// GetWindowText retrieves the caption of a window
func GetWindowText(hwnd uintptr) string {
	buf := make([]uint16, 256)

	ret, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}

	return syscall.UTF16ToString(buf)
}

// GetClassName retrieves the class name of a window
func GetClassName(hwnd uintptr) string {
	buf := make([]uint16, 256)

	ret, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}

	return syscall.UTF16ToString(buf)
}

// IsWindowVisible checks if a window is visible
func IsWindowVisible(hwnd uintptr) bool {
	ret, _, _ := procIsWindowVisible.Call(hwnd)
	return ret != 0
}

// IsWindow reports whether hwnd currently identifies a live window
func IsWindow(hwnd uintptr) bool {
	if hwnd == 0 {
		return false
	}

	ret, _, _ := procIsWindow.Call(hwnd)
	return ret != 0
}

// GetParent returns the parent window, ignoring owners
func GetParent(hwnd uintptr) uintptr {
	ret, _, _ := procGetAncestor.Call(hwnd, GA_PARENT)
	return ret
}

// GetWindowPid retrieves the process ID of a window
func GetWindowPid(hwnd uintptr) uint32 {
	var pid uint32

	ret, _, _ := procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if ret == 0 {
		return 0
	}

	return pid
}

// GetProcessName returns the executable file name of a process, or "" if
// the process cannot be queried
func GetProcessName(pid uint32) string {
	if pid == 0 {
		return ""
	}

	handle, _, _ := procOpenProcess.Call(PROCESS_QUERY_LIMITED_INFORMATION, 0, uintptr(pid))
	if handle == 0 {
		return ""
	}
	defer procCloseHandle.Call(handle)

	buf := make([]uint16, syscall.MAX_PATH)
	size := uint32(len(buf))

	ret, _, _ := procQueryFullProcessImageW.Call(
		handle,
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
	)
	if ret == 0 {
		return ""
	}

	return filepath.Base(syscall.UTF16ToString(buf[:size]))
}

// GetWindowRect retrieves the screen bounding rectangle of a window
func GetWindowRect(hwnd uintptr) (Rect, bool) {
	var r Rect

	ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return r, ret != 0
}

// FindWindow returns the first top-level window with the given class and caption.
// An empty class or caption acts as a wildcard.
func FindWindow(className, caption string) uintptr {
	var classPtr, captionPtr *uint16

	if className != "" {
		classPtr, _ = syscall.UTF16PtrFromString(className)
	}

	if caption != "" {
		captionPtr, _ = syscall.UTF16PtrFromString(caption)
	}

	ret, _, _ := procFindWindowExW.Call(
		0,
		0,
		uintptr(unsafe.Pointer(classPtr)),
		uintptr(unsafe.Pointer(captionPtr)),
	)

	return ret
}

// IsResponsive sends WM_NULL with a timeout to check the owning thread is pumping messages
func IsResponsive(hwnd uintptr, timeoutMs uint32) bool {
	var result uintptr

	ret, _, _ := procSendMessageTimeoutW.Call(
		hwnd,
		WM_NULL,
		0,
		0,
		SMTO_ABORTIFHUNG,
		uintptr(timeoutMs),
		uintptr(unsafe.Pointer(&result)),
	)

	return ret != 0
}

// CloseWindow asks a window to close by posting WM_CLOSE
func CloseWindow(hwnd uintptr) bool {
	ret, _, _ := procPostMessageW.Call(hwnd, WM_CLOSE, 0, 0)
	return ret != 0
}
