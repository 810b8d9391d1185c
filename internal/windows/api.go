//go:build windows

package windows

import "syscall"

const (
	WM_NULL          = 0x0000
	WM_CLOSE         = 0x0010
	WM_SETTEXT       = 0x000C
	WM_GETTEXT       = 0x000D
	WM_GETTEXTLENGTH = 0x000E
	BM_CLICK         = 0x00F5
	SMTO_ABORTIFHUNG = 0x0002

	MOUSEEVENTF_LEFTDOWN = 0x0002
	MOUSEEVENTF_LEFTUP   = 0x0004

	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002

	SW_RESTORE   = 9
	CLR_INVALID  = 0xFFFFFFFF
	GA_PARENT    = 1
	MaxTextChars = 1024

	TOKEN_QUERY    = 0x0008
	TokenElevation = 20

	PROCESS_QUERY_LIMITED_INFORMATION = 0x1000
)

var (
	shell32                      = syscall.NewLazyDLL("shell32.dll")
	procShellExecute             = shell32.NewProc("ShellExecuteW")
	kernel32                     = syscall.NewLazyDLL("kernel32.dll")
	procCloseHandle              = kernel32.NewProc("CloseHandle")
	procGetCurrentProcess        = kernel32.NewProc("GetCurrentProcess")
	procOpenProcess              = kernel32.NewProc("OpenProcess")
	procQueryFullProcessImageW   = kernel32.NewProc("QueryFullProcessImageNameW")
	procOpenProcessToken         = advapi32.NewProc("OpenProcessToken")
	advapi32                     = syscall.NewLazyDLL("advapi32.dll")
	procGetTokenInformation      = advapi32.NewProc("GetTokenInformation")
	user32                       = syscall.NewLazyDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procEnumChildWindows         = user32.NewProc("EnumChildWindows")
	procFindWindowExW            = user32.NewProc("FindWindowExW")
	procGetAncestor              = user32.NewProc("GetAncestor")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procSendMessageW             = user32.NewProc("SendMessageW")
	procPostMessageW             = user32.NewProc("PostMessageW")
	procSendMessageTimeoutW      = user32.NewProc("SendMessageTimeoutW")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procShowWindow               = user32.NewProc("ShowWindow")
	procKeybdEvent               = user32.NewProc("keybd_event")
	procMouseEvent               = user32.NewProc("mouse_event")
	procGetCursorPos             = user32.NewProc("GetCursorPos")
	procSetCursorPos             = user32.NewProc("SetCursorPos")
	procGetDC                    = user32.NewProc("GetDC")
	procReleaseDC                = user32.NewProc("ReleaseDC")
	gdi32                        = syscall.NewLazyDLL("gdi32.dll")
	procGetPixel                 = gdi32.NewProc("GetPixel")
)

// TOKEN_ELEVATION mirrors the Win32 structure of the same name
type TOKEN_ELEVATION struct {
	TokenIsElevated uint32
}
