package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/comdlg/internal/dialog"
)

var openTrigger triggerFlags

var openCmd = &cobra.Command{
	Use:   "open <file>",
	Short: "Complete an Open dialog with an existing file",
	Example: `  comdlg open C:\Users\me\Documents\report.txt
  comdlg open report.txt --process notepad.exe --hotkey ctrl+o`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openTrigger.register(openCmd, "ctrl+o")
}

func runOpen(cmd *cobra.Command, args []string) error {
	if err := openTrigger.validate(); err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("error resolving file path: %w", err)
	}

	p, err := platform()
	if err != nil {
		return err
	}

	log.Info("Waiting for Open dialog...", slog.String("path", path))

	_, err = newController(p).Open(cmd.Context(), path, dialog.OpenOptions{
		Trigger: openTrigger.trigger(p),
	})
	if err != nil {
		log.Error("Open failed", slog.String("path", path), slog.Any("error", err))
		return err
	}

	return nil
}
