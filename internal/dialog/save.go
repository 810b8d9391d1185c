package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// SaveOptions configures a Save As dialog session
type SaveOptions struct {
	// CreateDirectory creates a missing parent directory. Without it the
	// dialog is left to reject the path.
	CreateDirectory bool

	// Overwrite removes an existing target first. Without it an existing
	// target cancels the dialog and is left untouched.
	Overwrite bool

	Trigger Trigger
}

// SaveResult describes a finished Save As session
type SaveResult struct {
	Session   *Session
	Path      string
	Cancelled bool
}

// Save waits for a Save As dialog, enters path and saves, then waits for
// the file to appear on disk.
func (c *Controller) Save(ctx context.Context, path string, opts SaveOptions) (SaveResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	result := SaveResult{Path: path}

	if err := c.runTrigger(ctx, opts.Trigger); err != nil {
		return result, err
	}

	s, err := c.await(ctx, SaveAsDialog)
	if err != nil {
		return result, err
	}

	s.Path = path
	result.Session = s

	// Avoid the popups the dialog raises for a missing folder or an existing file
	if err := c.prepareTarget(path, opts); err != nil {
		return result, err
	}

	result.Cancelled = c.isFile(path) && !opts.Overwrite

	s.advance(Interacting)

	if err := c.setFileName(s, path); err != nil {
		return result, err
	}

	if result.Cancelled {
		c.log.Warn("File already exists, cancelling save", slog.String("path", path), slog.String("session", s.ID))

		if err := c.click(s, s.Cancel, "Cancel"); err != nil {
			return result, err
		}

		return result, c.waitClosed(ctx, s)
	}

	if err := c.click(s, s.Action, "Save"); err != nil {
		return result, err
	}

	c.log.Info("Downloading", slog.String("path", path), slog.String("session", s.ID))

	if err := c.waitClosed(ctx, s); err != nil {
		return result, err
	}

	// Closing the dialog does not mean the write has finished
	err = c.waiter(c.deps.Timing.FileTimeout).Until(ctx, "file "+path, func() (bool, error) {
		return c.isFile(path), nil
	})
	if err != nil {
		return result, err
	}

	c.log.Info("Saved file", slog.String("path", path), slog.String("session", s.ID))
	return result, nil
}

func (c *Controller) prepareTarget(path string, opts SaveOptions) error {
	dir := filepath.Dir(path)

	if !c.isDir(dir) {
		if !opts.CreateDirectory {
			c.log.Warn("Target directory does not exist", slog.String("dir", dir))
			return nil
		}

		if err := c.deps.Fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		c.log.Debug("Created directory", slog.String("dir", dir))
		return nil
	}

	if opts.Overwrite && c.isFile(path) {
		if err := c.deps.Fs.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing file %s: %w", path, err)
		}

		c.log.Debug("Removed existing file", slog.String("path", path))
	}

	return nil
}
