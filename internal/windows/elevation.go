//go:build windows

package windows

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unsafe"
)

// IsElevated reports whether the current process holds an elevated token.
// A non-elevated process cannot send messages to windows of an elevated one.
func IsElevated() bool {
	var token uintptr

	currentProcess, _, _ := procGetCurrentProcess.Call()
	ret, _, _ := procOpenProcessToken.Call(
		currentProcess,
		uintptr(TOKEN_QUERY),
		uintptr(unsafe.Pointer(&token)),
	)

	if ret == 0 {
		return false
	}

	defer func() { _, _, _ = procCloseHandle.Call(token) }()

	var elevation TOKEN_ELEVATION
	var returnLength uint32

	ret, _, _ = procGetTokenInformation.Call(
		token,
		uintptr(TokenElevation),
		uintptr(unsafe.Pointer(&elevation)),
		uintptr(unsafe.Sizeof(elevation)),
		uintptr(unsafe.Pointer(&returnLength)),
	)

	if ret == 0 {
		return false
	}

	return elevation.TokenIsElevated != 0
}

// RelaunchAsAdmin starts the current executable again with the runas verb
func RelaunchAsAdmin() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	// Check if running via 'go run' (exe will be in temp dir)
	if strings.Contains(exe, "go-build") {
		slog.Error("Detected 'go run' - please build the executable first with: go build -o comdlg.exe")
		return fmt.Errorf("cannot relaunch when run via 'go run', please build first")
	}

	args := make([]string, 0, len(os.Args)-1)
	for _, a := range os.Args[1:] {
		if a == "--elevate" {
			continue
		}

		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}

		args = append(args, a)
	}

	return ShellExecute(0, "runas", exe, strings.Join(args, " "), "", 1)
}
