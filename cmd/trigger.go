package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/comdlg/internal/dialog"
	"github.com/Norgate-AV/comdlg/internal/host"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

// triggerFlags describe how comdlg raises a dialog itself: focus the host
// window and send its accelerator
type triggerFlags struct {
	window  string
	process string
	hotkey  string
}

func (f *triggerFlags) register(cmd *cobra.Command, example string) {
	cmd.Flags().StringVarP(&f.window, "window", "w", "", "title substring of the window that raises the dialog")
	cmd.Flags().StringVarP(&f.process, "process", "p", "", "process name of the window that raises the dialog, e.g. notepad.exe")
	cmd.Flags().StringVarP(&f.hotkey, "hotkey", "k", "", "accelerator that raises the dialog, e.g. "+example)
}

func (f *triggerFlags) validate() error {
	if f.hotkey == "" {
		return nil
	}

	if f.window == "" && f.process == "" {
		return errors.New("--hotkey requires --window or --process")
	}

	_, err := windows.ParseHotkey(f.hotkey)
	return err
}

// trigger returns nil when no hotkey was given, leaving the dialog to be
// raised by someone else
func (f *triggerFlags) trigger(p *Platform) dialog.Trigger {
	if f.hotkey == "" {
		return nil
	}

	q := host.Query{Process: f.process, Title: f.window}

	return func(ctx context.Context) error {
		info, err := bringToFront(ctx, p, q)
		if err != nil {
			return err
		}

		log.Info("Sending hotkey", slog.String("hotkey", f.hotkey), slog.String("window", info.Title))
		return p.Keyboard.SendHotkey(f.hotkey)
	}
}
