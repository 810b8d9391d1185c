// Package dialog drives the standard Open and Save As file dialogs by
// resolving their controls, injecting the target path and waiting for the
// dialog to finish.
package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/Norgate-AV/comdlg/internal/interfaces"
	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/resolver"
	"github.com/Norgate-AV/comdlg/internal/timeouts"
	"github.com/Norgate-AV/comdlg/internal/wait"
)

// Control paths, relative to the dialog window
var (
	openFileNamePath = []resolver.Segment{resolver.Seg("ComboBoxEx32"), resolver.Seg("ComboBox"), resolver.Seg("Edit")}
	openTypePath     = []resolver.Segment{resolver.Seg("ComboBox")}
	openButtonPath   = []resolver.Segment{{Class: "Button", Caption: "&Open"}}
	saveButtonPath   = []resolver.Segment{{Class: "Button", Caption: "&Save"}}
	cancelButtonPath = []resolver.Segment{{Class: "Button", Caption: "Cancel"}}

	// The Save As field and type combo live in sink containers of the
	// themed view. Each sink holds one ComboBox; only the file name combo
	// has an Edit child.
	saveSinkPath  = []resolver.Segment{resolver.Seg("DUIViewWndClassName"), resolver.Seg("DirectUIHWND"), resolver.Seg("FloatNotifySink")}
	sinkComboPath = []resolver.Segment{resolver.Seg("ComboBox")}
	comboEditPath = []resolver.Segment{resolver.Seg("Edit")}
)

// Timing configures polling cadence and deadlines
type Timing struct {
	PollInterval   time.Duration
	OpenTimeout    time.Duration
	HandlesTimeout time.Duration
	CloseTimeout   time.Duration
	FileTimeout    time.Duration
	SettleDelay    time.Duration
	InputDelay     time.Duration
}

// DefaultTiming returns the standard timings
func DefaultTiming() Timing {
	return Timing{
		PollInterval:   timeouts.StatePollingInterval,
		OpenTimeout:    timeouts.DialogOpenTimeout,
		HandlesTimeout: timeouts.DialogHandlesTimeout,
		CloseTimeout:   timeouts.DialogCloseTimeout,
		FileTimeout:    timeouts.FileMaterializeTimeout,
		SettleDelay:    timeouts.DialogAppearSettleDelay,
		InputDelay:     timeouts.DialogInputDelay,
	}
}

// Dependencies holds all external dependencies for testing
type Dependencies struct {
	WindowMgr interfaces.WindowManager
	Fs        afero.Fs
	Clock     wait.Clock
	Timing    Timing
}

// sessionMu is held for the whole of a session. The dialogs are shared
// desktop state, so only one interaction may be in flight per process
// regardless of how many Controllers exist.
var sessionMu sync.Mutex

// Controller runs dialog sessions, one at a time across the process
type Controller struct {
	log  logger.LoggerInterface
	deps *Dependencies
}

// NewController creates a Controller. A nil Fs uses the OS filesystem and a
// nil Clock uses the wall clock.
func NewController(log logger.LoggerInterface, deps *Dependencies) *Controller {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	if deps.Clock == nil {
		deps.Clock = wait.RealClock()
	}

	if deps.Timing == (Timing{}) {
		deps.Timing = DefaultTiming()
	}

	return &Controller{log: log, deps: deps}
}

// Trigger makes the dialog appear, for example by sending an accelerator
// to the owning application. It runs after preconditions are checked.
type Trigger func(ctx context.Context) error

func (c *Controller) waiter(deadline time.Duration) wait.Waiter {
	return wait.Waiter{
		Interval: c.deps.Timing.PollInterval,
		Deadline: deadline,
		Clock:    c.deps.Clock,
	}
}

// await waits for the dialog window and resolves all of its controls
func (c *Controller) await(ctx context.Context, kind Kind) (*Session, error) {
	s := newSession(kind)
	wm := c.deps.WindowMgr

	c.log.Debug(fmt.Sprintf("Waiting for '%s' dialog...", kind.Caption()), slog.String("session", s.ID))

	root, err := wait.Poll(ctx, c.waiter(c.deps.Timing.OpenTimeout), kind.String()+" dialog open", func() (uintptr, bool, error) {
		hwnd := wm.FindWindow(DialogClass, kind.Caption())
		return hwnd, hwnd != 0 && wm.IsWindow(hwnd), nil
	})
	if err != nil {
		return nil, err
	}

	s.Root = root
	s.advance(HandlesResolving)

	c.log.Debug("Dialog detected",
		slog.String("session", s.ID),
		slog.String("title", kind.Caption()),
		slog.Uint64("hwnd", uint64(root)),
	)

	// Controls are not created the instant the window appears
	if err := c.waiter(0).Sleep(ctx, c.deps.Timing.SettleDelay); err != nil {
		return nil, err
	}

	err = c.waiter(c.deps.Timing.HandlesTimeout).Until(ctx, kind.String()+" dialog controls", func() (bool, error) {
		if !wm.IsWindow(s.Root) {
			return false, fmt.Errorf("%w: hwnd %#x", ErrStaleSession, s.Root)
		}

		return c.resolveHandles(s)
	})
	if err != nil {
		return nil, err
	}

	s.advance(Ready)

	c.log.Debug("Dialog controls resolved",
		slog.String("session", s.ID),
		slog.Uint64("file_name", uint64(s.FileName)),
		slog.Uint64("type", uint64(s.TypeCombo)),
		slog.Uint64("action", uint64(s.Action)),
		slog.Uint64("cancel", uint64(s.Cancel)),
	)

	return s, nil
}

// resolveHandles fills in whatever handles can be found now and reports
// whether the session is complete
func (c *Controller) resolveHandles(s *Session) (bool, error) {
	wm := c.deps.WindowMgr

	var err error
	if s.Cancel, err = resolveUnique(wm, s.Root, cancelButtonPath); err != nil {
		return false, err
	}

	switch s.Kind {
	case OpenDialog:
		if s.Action, err = resolveUnique(wm, s.Root, openButtonPath); err != nil {
			return false, err
		}

		if s.FileName, err = resolveUnique(wm, s.Root, openFileNamePath); err != nil {
			return false, err
		}

		if s.TypeCombo, err = resolveUnique(wm, s.Root, openTypePath); err != nil {
			return false, err
		}

	case SaveAsDialog:
		if s.Action, err = resolveUnique(wm, s.Root, saveButtonPath); err != nil {
			return false, err
		}

		if err := c.resolveSaveFields(s); err != nil {
			return false, err
		}
	}

	return s.complete(), nil
}

func (c *Controller) resolveSaveFields(s *Session) error {
	wm := c.deps.WindowMgr

	sinks, err := resolver.Resolve(wm, s.Root, saveSinkPath)
	if err != nil {
		return err
	}

	s.FileName, s.TypeCombo = 0, 0
	for _, sink := range sinks {
		combos, err := resolver.Resolve(wm, sink, sinkComboPath)
		if err != nil {
			return err
		}

		for _, combo := range combos {
			edits, err := resolver.Resolve(wm, combo, comboEditPath)
			if err != nil {
				return err
			}

			switch len(edits) {
			case 0:
				if s.TypeCombo == 0 {
					s.TypeCombo = combo
				}
			case 1:
				if _, ok := wm.ControlText(edits[0]); ok && s.FileName == 0 {
					s.FileName = edits[0]
				}
			}
		}
	}

	return nil
}

// resolveUnique resolves path to a single control. Several matches for a
// control that must be unique means the path is wrong.
func resolveUnique(tree interfaces.WindowTree, root uintptr, path []resolver.Segment) (uintptr, error) {
	matches, err := resolver.Resolve(tree, root, path)
	if err != nil {
		return 0, err
	}

	switch len(matches) {
	case 0:
		return 0, nil
	case 1:
		return matches[0], nil
	default:
		return 0, &resolver.AmbiguityError{
			Depth:   len(path) - 1,
			Segment: path[len(path)-1],
			Matches: len(matches),
		}
	}
}

// ensureLive fails if the session's dialog has gone away
func (c *Controller) ensureLive(s *Session) error {
	if !c.deps.WindowMgr.IsWindow(s.Root) {
		return fmt.Errorf("%w: %s dialog hwnd %#x", ErrStaleSession, s.Kind, s.Root)
	}

	return nil
}

func (c *Controller) setFileName(s *Session, path string) error {
	if err := c.ensureLive(s); err != nil {
		return err
	}

	if !c.deps.WindowMgr.SetControlText(s.FileName, path) {
		return fmt.Errorf("%w: file name field %#x rejected text", ErrControlNotFound, s.FileName)
	}

	c.log.Debug("Set file name", slog.String("session", s.ID), slog.String("path", path))
	return nil
}

func (c *Controller) click(s *Session, hwnd uintptr, name string) error {
	if err := c.ensureLive(s); err != nil {
		return err
	}

	if !c.deps.WindowMgr.ClickButton(hwnd) {
		return fmt.Errorf("%w: %s button %#x", ErrControlNotFound, name, hwnd)
	}

	c.log.Debug("Clicked button", slog.String("session", s.ID), slog.String("button", name))
	return nil
}

// waitClosed blocks until the dialog window is gone
func (c *Controller) waitClosed(ctx context.Context, s *Session) error {
	wm := c.deps.WindowMgr

	err := c.waiter(c.deps.Timing.CloseTimeout).Until(ctx, s.Kind.String()+" dialog close", func() (bool, error) {
		return !wm.IsWindow(s.Root), nil
	})
	if err != nil {
		return err
	}

	s.advance(Closed)
	c.log.Debug("Dialog closed", slog.String("session", s.ID))
	return nil
}

func (c *Controller) isFile(path string) bool {
	info, err := c.deps.Fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (c *Controller) isDir(path string) bool {
	info, err := c.deps.Fs.Stat(path)
	return err == nil && info.IsDir()
}

func (c *Controller) runTrigger(ctx context.Context, trigger Trigger) error {
	if trigger == nil {
		return nil
	}

	if err := trigger(ctx); err != nil {
		return fmt.Errorf("failed to trigger dialog: %w", err)
	}

	return nil
}
