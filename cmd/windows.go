package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/comdlg/internal/host"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

var windowsQuery host.Query

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List visible top-level windows as YAML",
	Args:  cobra.NoArgs,
	RunE:  runWindows,
}

func init() {
	windowsCmd.Flags().StringVarP(&windowsQuery.Process, "process", "p", "", "only windows of this process, e.g. chrome.exe")
	windowsCmd.Flags().StringVarP(&windowsQuery.Title, "title", "t", "", "only windows whose title contains this text")
}

func runWindows(cmd *cobra.Command, _ []string) error {
	p, err := platform()
	if err != nil {
		return err
	}

	all := p.Procs.EnumerateWindows()
	if windowsQuery.Process == "" && windowsQuery.Title == "" {
		return writeYAML(cmd, all)
	}

	matched := make([]windows.WindowInfo, 0, len(all))
	for _, w := range all {
		if windowsQuery.Matches(w) {
			matched = append(matched, w)
		}
	}

	return writeYAML(cmd, matched)
}
