// Package viewer watches an embedded document viewer through a single
// screen pixel and drives its download button into a Save As dialog.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Norgate-AV/comdlg/internal/dialog"
	"github.com/Norgate-AV/comdlg/internal/interfaces"
	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/timeouts"
	"github.com/Norgate-AV/comdlg/internal/wait"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

var (
	// ErrViewer is matched by every error the poller returns
	ErrViewer = errors.New("viewer")

	// ErrNotLoaded means the document never reached the loaded state
	ErrNotLoaded = fmt.Errorf("%w: document not loaded", ErrViewer)

	// ErrDownloadClick means the download button could not be clicked
	ErrDownloadClick = fmt.Errorf("%w: download click failed", ErrViewer)

	// ErrSave means the Save As dialog did not complete
	ErrSave = fmt.Errorf("%w: save failed", ErrViewer)
)

// ClickMode selects how the download hotspot is clicked
type ClickMode string

const (
	// PointerClick moves the OS pointer, clicks and puts it back
	PointerClick ClickMode = "pointer"

	// DevToolsClick dispatches the click to the page element without touching the pointer
	DevToolsClick ClickMode = "devtools"
)

// ParseClickMode validates a configured click mode
func ParseClickMode(s string) (ClickMode, error) {
	switch m := ClickMode(s); m {
	case PointerClick, DevToolsClick:
		return m, nil
	default:
		return "", fmt.Errorf("unknown click mode %q (want %q or %q)", s, PointerClick, DevToolsClick)
	}
}

// Config holds the hotspot geometry and polling cadence
type Config struct {
	// HotspotOffset is added to the element's top-right corner in screen space
	HotspotOffset windows.Point
	ClickMode     ClickMode
	PollInterval  time.Duration
	StateTimeout  time.Duration
}

// DefaultConfig returns the geometry of the stock viewer toolbar
func DefaultConfig() Config {
	return Config{
		HotspotOffset: windows.Point{X: -108, Y: 159},
		ClickMode:     PointerClick,
		PollInterval:  timeouts.StatePollingInterval,
		StateTimeout:  timeouts.ViewerStateTimeout,
	}
}

// Saver completes a Save As dialog; *dialog.Controller implements it
type Saver interface {
	Save(ctx context.Context, path string, opts dialog.SaveOptions) (dialog.SaveResult, error)
}

// Dependencies holds all external dependencies for testing
type Dependencies struct {
	WindowMgr interfaces.WindowManager
	Pixels    interfaces.PixelSampler
	Pointer   interfaces.PointerInjector
	Element   interfaces.ElementLocator
	Saver     Saver
	Clock     wait.Clock
}

// Poller tracks one viewer element hosted in one top-level window
type Poller struct {
	log  logger.LoggerInterface
	deps *Dependencies
	cfg  Config
	host uintptr

	hotspot     windows.Point
	state       State
	initialized bool
}

// NewPoller creates a Poller for the viewer inside host
func NewPoller(log logger.LoggerInterface, host uintptr, deps *Dependencies, cfg Config) *Poller {
	if deps.Clock == nil {
		deps.Clock = wait.RealClock()
	}

	if cfg.ClickMode == "" {
		cfg.ClickMode = PointerClick
	}

	return &Poller{
		log:   log,
		deps:  deps,
		cfg:   cfg,
		host:  host,
		state: Unknown,
	}
}

// Hotspot returns the last computed hotspot
func (p *Poller) Hotspot() windows.Point {
	return p.hotspot
}

// State returns the last sampled state
func (p *Poller) State() State {
	return p.state
}

// Initialized reports whether a document has been seen loaded before
func (p *Poller) Initialized() bool {
	return p.initialized
}

// RecomputeHotspot derives the hotspot from the host window's current
// position and the element's position within the page
func (p *Poller) RecomputeHotspot(ctx context.Context) (windows.Point, error) {
	rect, ok := p.deps.WindowMgr.WindowRect(p.host)
	if !ok {
		return windows.Point{}, fmt.Errorf("%w: host window %#x is gone", ErrViewer, p.host)
	}

	box, err := p.deps.Element.Box(ctx)
	if err != nil {
		return windows.Point{}, fmt.Errorf("%w: failed to locate element: %w", ErrViewer, err)
	}

	p.hotspot = windows.Point{
		X: rect.Left + int32(box.X+box.Width) + p.cfg.HotspotOffset.X,
		Y: rect.Top + int32(box.Y) + p.cfg.HotspotOffset.Y,
	}

	return p.hotspot, nil
}

// RefreshState samples the pixel at the current hotspot
func (p *Poller) RefreshState() (State, error) {
	c, err := p.deps.Pixels.PixelColor(p.hotspot.X, p.hotspot.Y)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %w", ErrViewer, err)
	}

	p.state = Classify(c)
	return p.state, nil
}

// sample recomputes the hotspot, since the window may have moved, then reads the state
func (p *Poller) sample(ctx context.Context) (State, error) {
	if _, err := p.RecomputeHotspot(ctx); err != nil {
		return Unknown, err
	}

	return p.RefreshState()
}

func (p *Poller) waitFor(ctx context.Context, op string, done func(State) bool) error {
	w := wait.Waiter{Interval: p.cfg.PollInterval, Deadline: p.cfg.StateTimeout, Clock: p.deps.Clock}

	return w.Until(ctx, op, func() (bool, error) {
		s, err := p.sample(ctx)
		if err != nil {
			return false, err
		}

		return done(s), nil
	})
}

// TriggerDownloadAndSave waits for the viewer to show a freshly loaded
// document, clicks its download button and completes the Save As dialog.
func (p *Poller) TriggerDownloadAndSave(ctx context.Context, path string, opts dialog.SaveOptions) (dialog.SaveResult, error) {
	result, err := p.triggerDownloadAndSave(ctx, path, opts)
	if err != nil {
		p.log.Error("Viewer download failed", slog.String("path", path), slog.String("error", err.Error()))
	}

	return result, err
}

func (p *Poller) triggerDownloadAndSave(ctx context.Context, path string, opts dialog.SaveOptions) (dialog.SaveResult, error) {
	if _, err := p.RecomputeHotspot(ctx); err != nil {
		return dialog.SaveResult{Path: path}, err
	}

	// The previous document is still on screen until the next one starts loading
	if p.initialized {
		p.log.Debug("Waiting for previous document to unload")

		if err := p.waitFor(ctx, "viewer unload", func(s State) bool { return s != Loaded }); err != nil {
			return dialog.SaveResult{Path: path}, fmt.Errorf("%w: %w", ErrNotLoaded, err)
		}
	}

	if err := p.waitFor(ctx, "viewer loaded", func(s State) bool { return s == Loaded }); err != nil {
		return dialog.SaveResult{Path: path}, fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}

	p.initialized = true
	p.log.Debug("Document loaded", slog.Int("x", int(p.hotspot.X)), slog.Int("y", int(p.hotspot.Y)))

	var clickErr error
	opts.Trigger = func(ctx context.Context) error {
		clickErr = p.clickDownload(ctx)
		return clickErr
	}

	result, err := p.deps.Saver.Save(ctx, path, opts)
	switch {
	case clickErr != nil:
		return result, fmt.Errorf("%w: %w", ErrDownloadClick, clickErr)
	case err != nil:
		return result, fmt.Errorf("%w: %w", ErrSave, err)
	}

	return result, nil
}

func (p *Poller) clickDownload(ctx context.Context) error {
	if _, err := p.RecomputeHotspot(ctx); err != nil {
		return err
	}

	switch p.cfg.ClickMode {
	case DevToolsClick:
		box, err := p.deps.Element.Box(ctx)
		if err != nil {
			return err
		}

		dx := box.Width + float64(p.cfg.HotspotOffset.X)
		dy := float64(p.cfg.HotspotOffset.Y)

		p.log.Debug("Clicking download through DevTools", slog.Float64("dx", dx), slog.Float64("dy", dy))
		return p.deps.Element.ClickOffset(ctx, dx, dy)

	default:
		return p.pointerClick(p.hotspot)
	}
}

// pointerClick clicks at target and returns the pointer to where the operator left it
func (p *Poller) pointerClick(target windows.Point) (err error) {
	saved, err := p.deps.Pointer.CursorPos()
	if err != nil {
		return err
	}

	defer func() {
		if restoreErr := p.deps.Pointer.MoveTo(saved); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	p.log.Debug("Clicking download", slog.Int("x", int(target.X)), slog.Int("y", int(target.Y)))
	return p.deps.Pointer.ClickAt(target)
}
