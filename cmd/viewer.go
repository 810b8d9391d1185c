package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/comdlg/internal/browser"
	"github.com/Norgate-AV/comdlg/internal/dialog"
	"github.com/Norgate-AV/comdlg/internal/host"
	"github.com/Norgate-AV/comdlg/internal/viewer"
	"github.com/Norgate-AV/comdlg/internal/wait"
)

var viewerOpts struct {
	devtools  string
	selector  string
	tab       string
	url       string
	process   string
	window    string
	mkdir     bool
	overwrite bool
}

var viewerCmd = &cobra.Command{
	Use:   "viewer",
	Short: "Automate a document viewer embedded in a browser page",
}

var viewerSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Click the viewer's download button and complete the Save As dialog",
	Long: `Attaches to a running browser over the DevTools protocol, waits until the
embedded viewer has loaded its document, clicks the download button and saves
the document to <file>.

The browser must be started with --remote-debugging-port.`,
	Example: `  comdlg viewer save D:\statements\march.pdf \
    --devtools-url http://127.0.0.1:9222 --selector "#statement-viewer" --window Statement`,
	Args: cobra.ExactArgs(1),
	RunE: runViewerSave,
}

func init() {
	f := viewerSaveCmd.Flags()
	f.StringVar(&viewerOpts.devtools, "devtools-url", "", "DevTools endpoint of the running browser (http:// or ws://)")
	f.StringVar(&viewerOpts.selector, "selector", "", "CSS selector of the viewer element")
	f.StringVar(&viewerOpts.tab, "tab", "", "attach to the open tab whose URL or title contains this text")
	f.StringVar(&viewerOpts.url, "url", "", "navigate to this URL before locating the viewer")
	f.StringVarP(&viewerOpts.process, "process", "p", "chrome.exe", "process name of the browser window")
	f.StringVarP(&viewerOpts.window, "window", "w", "", "title substring of the browser window")
	f.String("click-mode", string(viewer.PointerClick), "how to click the download button: pointer or devtools")
	f.Int32("hotspot-x", -108, "horizontal offset of the download button from the viewer's top-right corner")
	f.Int32("hotspot-y", 159, "vertical offset of the download button from the viewer's top-right corner")
	addSaveFlags(viewerSaveCmd, &viewerOpts.mkdir, &viewerOpts.overwrite)

	_ = viewerSaveCmd.MarkFlagRequired("devtools-url")
	_ = viewerSaveCmd.MarkFlagRequired("selector")

	viewerCmd.AddCommand(viewerSaveCmd)
}

func runViewerSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("error resolving file path: %w", err)
	}

	p, err := platform()
	if err != nil {
		return err
	}

	info, err := bringToFront(ctx, p, host.Query{Process: viewerOpts.process, Title: viewerOpts.window})
	if err != nil {
		return err
	}

	loc, err := browser.Connect(ctx, log, browser.Options{
		DevToolsURL: viewerOpts.devtools,
		Tab:         viewerOpts.tab,
		URL:         viewerOpts.url,
		Selector:    viewerOpts.selector,
	})
	if err != nil {
		return err
	}
	defer loc.Close()

	poller := viewer.NewPoller(log, info.Hwnd, &viewer.Dependencies{
		WindowMgr: p.Windows,
		Pixels:    p.Pixels,
		Pointer:   p.Pointer,
		Element:   loc,
		Saver:     newController(p),
		Clock:     wait.RealClock(),
	}, cfg.ViewerConfig())

	res, err := poller.TriggerDownloadAndSave(ctx, path, dialog.SaveOptions{
		CreateDirectory: viewerOpts.mkdir,
		Overwrite:       viewerOpts.overwrite,
	})
	if err != nil {
		return err
	}

	if res.Cancelled {
		log.Info("Use --overwrite to replace the existing file")
	}

	log.Debug("Viewer state after save", slog.String("state", poller.State().String()))
	return nil
}
