//go:build !windows

package cmd

import (
	"errors"
	"runtime"

	"github.com/Norgate-AV/comdlg/internal/logger"
)

func nativePlatform(_ logger.LoggerInterface) (*Platform, error) {
	return nil, errors.New("comdlg drives Windows common dialogs and cannot run on " + runtime.GOOS)
}
