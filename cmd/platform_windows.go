//go:build windows

package cmd

import (
	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

func nativePlatform(log logger.LoggerInterface) (*Platform, error) {
	api := windows.NewWindowsAPI(log)

	return &Platform{
		Windows:  api,
		Procs:    api,
		Pixels:   api,
		Pointer:  api,
		Keyboard: api,
		Tree:     api.CollectChildInfos,
		Elevate:  windows.RelaunchAsAdmin,
	}, nil
}
