//go:build windows

package windows

import (
	"fmt"
	"image/color"
)

// GetPixelColor samples one pixel of the desktop at screen coordinates
func GetPixelColor(x, y int32) (color.RGBA, error) {
	hdc, _, _ := procGetDC.Call(0)
	if hdc == 0 {
		return color.RGBA{}, fmt.Errorf("GetDC failed")
	}

	defer func() { _, _, _ = procReleaseDC.Call(0, hdc) }()

	ref, _, _ := procGetPixel.Call(hdc, uintptr(x), uintptr(y))
	if uint32(ref) == CLR_INVALID {
		return color.RGBA{}, fmt.Errorf("pixel (%d, %d) is outside the desktop", x, y)
	}

	// COLORREF is 0x00BBGGRR
	return color.RGBA{
		R: uint8(ref),
		G: uint8(ref >> 8),
		B: uint8(ref >> 16),
		A: 0xFF,
	}, nil
}
