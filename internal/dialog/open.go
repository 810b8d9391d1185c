package dialog

import (
	"context"
	"fmt"
	"log/slog"
)

// OpenOptions configures an Open dialog session
type OpenOptions struct {
	Trigger Trigger
}

// Open waits for an Open dialog, enters path and confirms it. The source
// file must exist; this is checked before any window is touched.
func (c *Controller) Open(ctx context.Context, path string, opts OpenOptions) (*Session, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if !c.isFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	if err := c.runTrigger(ctx, opts.Trigger); err != nil {
		return nil, err
	}

	s, err := c.await(ctx, OpenDialog)
	if err != nil {
		return nil, err
	}

	s.Path = path

	// The field ignores text set too soon after the dialog appears
	if err := c.waiter(0).Sleep(ctx, c.deps.Timing.InputDelay); err != nil {
		return s, err
	}

	s.advance(Interacting)

	if err := c.setFileName(s, path); err != nil {
		return s, err
	}

	if err := c.click(s, s.Action, "Open"); err != nil {
		return s, err
	}

	if err := c.waitClosed(ctx, s); err != nil {
		return s, err
	}

	c.log.Info("Opened file", slog.String("path", path), slog.String("session", s.ID))
	return s, nil
}
