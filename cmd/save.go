package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/comdlg/internal/dialog"
)

var (
	saveTrigger   triggerFlags
	saveMkdir     bool
	saveOverwrite bool
)

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Complete a Save As dialog and wait for the file to be written",
	Long: `Fills in the Save As dialog that is open (or about to open) and waits for the
file to appear on disk. An existing file is kept and the dialog cancelled
unless --overwrite is given.`,
	Example: `  comdlg save D:\exports\statement.pdf --mkdir
  comdlg save out.txt --overwrite --window "Untitled - Notepad" --hotkey ctrl+shift+s`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	saveTrigger.register(saveCmd, "ctrl+shift+s")
	addSaveFlags(saveCmd, &saveMkdir, &saveOverwrite)
}

func addSaveFlags(cmd *cobra.Command, mkdir, overwrite *bool) {
	cmd.Flags().BoolVar(mkdir, "mkdir", false, "create the target directory when missing")
	cmd.Flags().BoolVar(overwrite, "overwrite", false, "replace an existing file instead of cancelling")
}

func runSave(cmd *cobra.Command, args []string) error {
	if err := saveTrigger.validate(); err != nil {
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

	log.Info("Waiting for Save As dialog...", slog.String("path", path))

	res, err := newController(p).Save(cmd.Context(), path, dialog.SaveOptions{
		CreateDirectory: saveMkdir,
		Overwrite:       saveOverwrite,
		Trigger:         saveTrigger.trigger(p),
	})
	if err != nil {
		log.Error("Save failed", slog.String("path", path), slog.Any("error", err))
		return err
	}

	if res.Cancelled {
		log.Info("Use --overwrite to replace the existing file")
	}

	return nil
}
