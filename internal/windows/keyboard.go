//go:build windows

package windows

import (
	"time"

	"github.com/Norgate-AV/comdlg/internal/timeouts"
)

// SendKeyCombo presses the virtual keys in order and releases them in reverse,
// e.g. SendKeyCombo(VK_CONTROL, 'O') for Ctrl+O
func SendKeyCombo(keys ...uint16) bool {
	if len(keys) == 0 {
		return false
	}

	for _, vk := range keys {
		procKeybdEvent.Call(uintptr(vk), 0, 0, 0)
		time.Sleep(timeouts.KeystrokeDelay)
	}

	for i := len(keys) - 1; i >= 0; i-- {
		procKeybdEvent.Call(uintptr(keys[i]), 0, KEYEVENTF_KEYUP, 0)
		time.Sleep(timeouts.KeystrokeDelay)
	}

	return true
}
