//go:build windows

package windows

import (
	"sync"
	"syscall"
	"unsafe"
)

var (
	childMu      sync.Mutex
	childHandles []uintptr

	// A single callback is shared by every enumeration; syscall.NewCallback
	// allocations are never released and the polling loops call this often.
	enumChildCallback = syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		childHandles = append(childHandles, hwnd)
		return 1
	})
)

// ChildWindows returns the direct children of parent.
// EnumChildWindows walks every descendant, so results are filtered by parent.
func ChildWindows(parent uintptr) []uintptr {
	childMu.Lock()
	defer childMu.Unlock()

	childHandles = nil
	procEnumChildWindows.Call(parent, enumChildCallback, 0)

	direct := make([]uintptr, 0, len(childHandles))
	for _, h := range childHandles {
		if GetParent(h) == parent {
			direct = append(direct, h)
		}
	}

	return direct
}

// CollectChildInfos returns the class and caption of every control beneath
// hwnd, nested the way the window tree is nested
func CollectChildInfos(hwnd uintptr) []ChildInfo {
	children := ChildWindows(hwnd)
	infos := make([]ChildInfo, 0, len(children))

	for _, ch := range children {
		infos = append(infos, ChildInfo{
			Hwnd:      ch,
			ClassName: GetClassName(ch),
			Text:      GetWindowText(ch),
			Children:  CollectChildInfos(ch),
		})
	}

	return infos
}

// GetControlText reads a control's text with WM_GETTEXT.
// ok is false when the control does not answer the message. An empty edit
// counts as readable: the Save As name field is told apart from the type
// combo by having an Edit child at all, not by holding text.
func GetControlText(hwnd uintptr) (text string, ok bool) {
	buf := make([]uint16, MaxTextChars)

	ret, _, _ := procSendMessageW.Call(hwnd, WM_GETTEXT, uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if ret == 0 {
		// An empty edit answers 0 as well; distinguish it by the text length
		length, _, _ := procSendMessageW.Call(hwnd, WM_GETTEXTLENGTH, 0, 0)
		return "", length == 0 && IsWindow(hwnd)
	}

	return syscall.UTF16ToString(buf[:ret]), true
}

// SetControlText replaces a control's text with WM_SETTEXT
func SetControlText(hwnd uintptr, text string) bool {
	ptr, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return false
	}

	ret, _, _ := procSendMessageW.Call(hwnd, WM_SETTEXT, 0, uintptr(unsafe.Pointer(ptr)))
	return ret != 0
}

// ClickButton sends BM_CLICK to a button control
func ClickButton(hwnd uintptr) bool {
	if !IsWindow(hwnd) {
		return false
	}

	procSendMessageW.Call(hwnd, BM_CLICK, 0, 0)
	return true
}
