package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Norgate-AV/comdlg/internal/dialog"
	"github.com/Norgate-AV/comdlg/internal/host"
	"github.com/Norgate-AV/comdlg/internal/interfaces"
	"github.com/Norgate-AV/comdlg/internal/wait"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

// Platform bundles the native capabilities the commands drive
type Platform struct {
	Windows  interfaces.WindowManager
	Procs    interfaces.ProcessWindows
	Pixels   interfaces.PixelSampler
	Pointer  interfaces.PointerInjector
	Keyboard interfaces.KeyboardInjector

	// Tree collects the child controls of a window, recursively
	Tree func(hwnd uintptr) []windows.ChildInfo
	// Elevate relaunches the current command line as administrator
	Elevate func() error
}

// newPlatform is replaced in tests
var newPlatform = nativePlatform

// platform returns the native capabilities, relaunching elevated first when
// --elevate is set and the process is not elevated
func platform() (*Platform, error) {
	p, err := newPlatform(log)
	if err != nil {
		return nil, err
	}

	if p.Windows.IsElevated() {
		log.Debug("Running with administrator privileges")
		return p, nil
	}

	if elevate {
		log.Info("Relaunching as administrator")

		if err := p.Elevate(); err != nil {
			return nil, fmt.Errorf("error relaunching as admin: %w", err)
		}

		return nil, errRelaunched
	}

	log.Warn("Not running as administrator, dialogs owned by elevated applications will ignore input (use --elevate)")
	return p, nil
}

func newController(p *Platform) *dialog.Controller {
	return dialog.NewController(log, &dialog.Dependencies{
		WindowMgr: p.Windows,
		Timing:    cfg.DialogTiming(),
	})
}

// bringToFront waits for the host window matching q, waits for it to answer
// messages and makes it the foreground window
func bringToFront(ctx context.Context, p *Platform, q host.Query) (windows.WindowInfo, error) {
	finder := host.NewFinder(log, p.Procs, wait.RealClock()).WithInterval(cfg.Wait.PollInterval)

	log.Info("Waiting for window", slog.String("query", q.String()))

	info, err := finder.WaitForAppear(ctx, q, cfg.Wait.WindowTimeout)
	if err != nil {
		return windows.WindowInfo{}, err
	}

	if err := finder.WaitForReady(ctx, info.Hwnd, cfg.Wait.WindowTimeout); err != nil {
		return windows.WindowInfo{}, err
	}

	if !p.Windows.SetForeground(info.Hwnd) {
		return windows.WindowInfo{}, fmt.Errorf("failed to bring %q to the foreground", info.Title)
	}

	return info, nil
}
