package windows

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	VK_RETURN  = 0x0D
	VK_SHIFT   = 0x10
	VK_CONTROL = 0x11
	VK_MENU    = 0x12
	VK_ESCAPE  = 0x1B
	VK_F1      = 0x70
)

// ParseHotkey converts a combination such as "ctrl+o" or "alt+shift+f12"
// into the virtual key codes accepted by SendKeyCombo
func ParseHotkey(combo string) ([]uint16, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	keys := make([]uint16, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		switch {
		case p == "ctrl" || p == "control":
			keys = append(keys, VK_CONTROL)
		case p == "alt":
			keys = append(keys, VK_MENU)
		case p == "shift":
			keys = append(keys, VK_SHIFT)
		case p == "enter" || p == "return":
			keys = append(keys, VK_RETURN)
		case p == "esc" || p == "escape":
			keys = append(keys, VK_ESCAPE)
		case len(p) == 1 && p[0] >= 'a' && p[0] <= 'z':
			keys = append(keys, uint16(p[0]-'a'+'A'))
		case len(p) == 1 && p[0] >= '0' && p[0] <= '9':
			keys = append(keys, uint16(p[0]))
		case len(p) > 1 && p[0] == 'f':
			n, err := strconv.Atoi(p[1:])
			if err != nil || n < 1 || n > 24 {
				return nil, fmt.Errorf("unknown key %q in hotkey %q", p, combo)
			}

			keys = append(keys, uint16(VK_F1+n-1))
		default:
			return nil, fmt.Errorf("unknown key %q in hotkey %q", p, combo)
		}
	}

	return keys, nil
}
