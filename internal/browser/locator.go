// Package browser locates the viewer element in a running Chromium-based
// browser over the DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/Norgate-AV/comdlg/internal/interfaces"
	"github.com/Norgate-AV/comdlg/internal/logger"
)

// ErrNoTarget is returned when no open page matches the requested tab
var ErrNoTarget = errors.New("no matching browser tab")

// Options selects the browser, page and element
type Options struct {
	// DevToolsURL is the browser's remote debugging endpoint, e.g. ws://127.0.0.1:9222/devtools/browser/<id>
	DevToolsURL string

	// Tab picks an open page whose URL or title contains it. Empty opens a new tab.
	Tab string

	// URL is navigated to before locating the element, if set
	URL string

	// Selector is a CSS selector for the viewer element
	Selector string
}

func (o Options) validate() error {
	if strings.TrimSpace(o.DevToolsURL) == "" {
		return errors.New("devtools url is required")
	}

	if strings.TrimSpace(o.Selector) == "" {
		return errors.New("element selector is required")
	}

	return nil
}

// Locator reads the geometry of one element and clicks inside it
type Locator struct {
	log      logger.LoggerInterface
	ctx      context.Context
	selector string
	cancels  []context.CancelFunc
}

var _ interfaces.ElementLocator = (*Locator)(nil)

// Connect attaches to the browser at opts.DevToolsURL and prepares the page.
// Close releases the DevTools session.
func Connect(ctx context.Context, log logger.LoggerInterface, opts Options) (*Locator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	l := &Locator{log: log, selector: opts.Selector}

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, opts.DevToolsURL)
	l.cancels = append(l.cancels, cancelAlloc)

	tabCtx, err := l.openTab(allocCtx, opts.Tab)
	if err != nil {
		l.Close()
		return nil, err
	}

	l.ctx = tabCtx

	if opts.URL != "" {
		log.Debug("Navigating", slog.String("url", opts.URL))

		if err := chromedp.Run(l.ctx, chromedp.Navigate(opts.URL)); err != nil {
			l.Close()
			return nil, fmt.Errorf("navigate to %s: %w", opts.URL, err)
		}
	}

	if err := chromedp.Run(l.ctx, chromedp.WaitVisible(opts.Selector, chromedp.ByQuery)); err != nil {
		l.Close()
		return nil, fmt.Errorf("wait for %q: %w", opts.Selector, err)
	}

	return l, nil
}

func (l *Locator) openTab(allocCtx context.Context, match string) (context.Context, error) {
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	l.cancels = append(l.cancels, cancelBrowser)

	if match == "" {
		return browserCtx, nil
	}

	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		return nil, fmt.Errorf("list browser tabs: %w", err)
	}

	info, err := pickTarget(targets, match)
	if err != nil {
		return nil, err
	}

	l.log.Debug("Attaching to tab", slog.String("title", info.Title), slog.String("url", info.URL))

	tabCtx, cancelTab := chromedp.NewContext(browserCtx, chromedp.WithTargetID(info.TargetID))
	l.cancels = append(l.cancels, cancelTab)

	return tabCtx, nil
}

// pickTarget returns the first page whose URL or title contains match
func pickTarget(targets []*target.Info, match string) (*target.Info, error) {
	needle := strings.ToLower(match)

	for _, t := range targets {
		if t == nil || t.Type != "page" {
			continue
		}

		if strings.Contains(strings.ToLower(t.URL), needle) || strings.Contains(strings.ToLower(t.Title), needle) {
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNoTarget, match)
}

// Close ends the DevTools session
func (l *Locator) Close() {
	for i := len(l.cancels) - 1; i >= 0; i-- {
		l.cancels[i]()
	}

	l.cancels = nil
}

// run executes actions on the tab, stopping early if ctx ends
func (l *Locator) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(l.ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Box returns the element's border box in CSS pixels relative to the viewport
func (l *Locator) Box(ctx context.Context) (interfaces.ElementBox, error) {
	var nodes []*cdp.Node
	var model *dom.BoxModel

	err := l.run(ctx,
		chromedp.Nodes(l.selector, &nodes, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(nodes) == 0 {
				return fmt.Errorf("selector %q matched no nodes", l.selector)
			}

			var err error
			model, err = dom.GetBoxModel().WithNodeID(nodes[0].NodeID).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return interfaces.ElementBox{}, fmt.Errorf("element box: %w", err)
	}

	return boxFromModel(model)
}

// boxFromModel converts a DevTools box model to its border box
func boxFromModel(model *dom.BoxModel) (interfaces.ElementBox, error) {
	if model == nil || len(model.Border) < 8 {
		return interfaces.ElementBox{}, errors.New("element has no box model")
	}

	if model.Width <= 0 || model.Height <= 0 {
		return interfaces.ElementBox{}, errors.New("element has zero size")
	}

	// Quad points run clockwise from the top-left corner
	return interfaces.ElementBox{
		X:      model.Border[0],
		Y:      model.Border[1],
		Width:  float64(model.Width),
		Height: float64(model.Height),
	}, nil
}

// ClickOffset clicks at (dx, dy) from the element's top-left corner
func (l *Locator) ClickOffset(ctx context.Context, dx, dy float64) error {
	box, err := l.Box(ctx)
	if err != nil {
		return err
	}

	x, y := box.X+dx, box.Y+dy

	l.log.Debug("Dispatching click", slog.Float64("x", x), slog.Float64("y", y))

	return l.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := input.DispatchMouseEvent(input.MouseMoved, x, y).Do(ctx); err != nil {
			return err
		}

		if err := input.DispatchMouseEvent(input.MousePressed, x, y).
			WithButton(input.Left).
			WithClickCount(1).
			Do(ctx); err != nil {
			return err
		}

		return input.DispatchMouseEvent(input.MouseReleased, x, y).
			WithButton(input.Left).
			WithClickCount(1).
			Do(ctx)
	}))
}
