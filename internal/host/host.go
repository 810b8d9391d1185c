// Package host finds the top-level window of the application that owns a
// dialog or viewer, and waits for it to be ready for input.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Norgate-AV/comdlg/internal/interfaces"
	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/timeouts"
	"github.com/Norgate-AV/comdlg/internal/wait"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

// Query selects a top-level window. Empty fields match anything.
type Query struct {
	Process string // executable name, e.g. chrome.exe
	Pid     uint32
	Title   string // case-insensitive substring
}

func (q Query) String() string {
	var parts []string

	if q.Process != "" {
		parts = append(parts, "process="+q.Process)
	}

	if q.Pid != 0 {
		parts = append(parts, fmt.Sprintf("pid=%d", q.Pid))
	}

	if q.Title != "" {
		parts = append(parts, fmt.Sprintf("title~%q", q.Title))
	}

	if len(parts) == 0 {
		return "any window"
	}

	return strings.Join(parts, " ")
}

// Matches reports whether w satisfies the query. Untitled windows never
// match since they are splash screens and hidden helpers.
func (q Query) Matches(w windows.WindowInfo) bool {
	if strings.TrimSpace(w.Title) == "" {
		return false
	}

	if q.Pid != 0 && w.Pid != q.Pid {
		return false
	}

	if q.Process != "" && !strings.EqualFold(w.Process, q.Process) {
		return false
	}

	if q.Title != "" && !strings.Contains(strings.ToLower(w.Title), strings.ToLower(q.Title)) {
		return false
	}

	return true
}

// Finder locates host windows
type Finder struct {
	log      logger.LoggerInterface
	procs    interfaces.ProcessWindows
	clock    wait.Clock
	interval time.Duration
}

// NewFinder creates a Finder; a nil clock uses the wall clock
func NewFinder(log logger.LoggerInterface, procs interfaces.ProcessWindows, clock wait.Clock) *Finder {
	if clock == nil {
		clock = wait.RealClock()
	}

	return &Finder{
		log:      log,
		procs:    procs,
		clock:    clock,
		interval: timeouts.StatePollingInterval,
	}
}

// WithInterval sets the delay between polls; non-positive values are ignored
func (f *Finder) WithInterval(d time.Duration) *Finder {
	if d > 0 {
		f.interval = d
	}

	return f
}

// Find returns the first visible window matching q
func (f *Finder) Find(q Query) (windows.WindowInfo, bool) {
	return f.find(q, nil)
}

func (f *Finder) find(q Query, seen map[uintptr]bool) (windows.WindowInfo, bool) {
	for _, w := range f.procs.EnumerateWindows() {
		if seen != nil && !seen[w.Hwnd] {
			seen[w.Hwnd] = true
			f.log.Debug("Window found",
				slog.String("title", w.Title),
				slog.String("process", w.Process),
				slog.Uint64("hwnd", uint64(w.Hwnd)),
			)
		}

		if q.Matches(w) {
			return w, true
		}
	}

	return windows.WindowInfo{}, false
}

// WaitForAppear polls until a window matching q is visible
func (f *Finder) WaitForAppear(ctx context.Context, q Query, timeout time.Duration) (windows.WindowInfo, error) {
	seen := make(map[uintptr]bool)

	f.log.Debug("Searching for window", slog.String("query", q.String()))

	w := wait.Waiter{Interval: f.interval, Deadline: timeout, Clock: f.clock}
	info, err := wait.Poll(ctx, w, "window "+q.String(), func() (windows.WindowInfo, bool, error) {
		info, ok := f.find(q, seen)
		return info, ok, nil
	})
	if err != nil {
		return windows.WindowInfo{}, err
	}

	f.log.Debug("Found host window", slog.String("title", info.Title), slog.Uint64("hwnd", uint64(info.Hwnd)))
	return info, nil
}

// WaitForReady waits until the window's thread answers messages and keeps
// answering across a short stability window
func (f *Finder) WaitForReady(ctx context.Context, hwnd uintptr, timeout time.Duration) error {
	f.log.Debug("Waiting for window ready state",
		slog.Uint64("hwnd", uint64(hwnd)),
		slog.String("timeout", timeout.String()),
	)

	w := wait.Waiter{Interval: f.interval, Deadline: timeout, Clock: f.clock}

	err := w.Until(ctx, "window ready", func() (bool, error) {
		if !f.procs.IsResponsive(hwnd) {
			return false, nil
		}

		consecutive := 0
		for i := 0; i < 3; i++ {
			if err := w.Sleep(ctx, timeouts.StabilityCheckInterval); err != nil {
				return false, err
			}

			if f.procs.IsResponsive(hwnd) {
				consecutive++
			}
		}

		return consecutive >= 2, nil
	})
	if err != nil {
		return err
	}

	f.log.Debug("Window is stable and ready")
	return nil
}
