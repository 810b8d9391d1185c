package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/comdlg/internal/resolver"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

var treeOpts struct {
	class   string
	caption string
	path    string
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the control tree of a top-level window as YAML",
	Long: `Prints the child controls of the first top-level window with the given class
and caption. With --path, prints only the controls a Class[:Caption]/... path
resolves to, which is how comdlg addresses dialog controls.`,
	Example: `  comdlg tree --class "#32770" --caption "Save As"
  comdlg tree --class "#32770" --caption "Open" --path "ComboBoxEx32/ComboBox/Edit"`,
	Args: cobra.NoArgs,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVar(&treeOpts.class, "class", "", "window class of the top-level window, e.g. #32770")
	treeCmd.Flags().StringVar(&treeOpts.caption, "caption", "", "exact caption of the top-level window")
	treeCmd.Flags().StringVar(&treeOpts.path, "path", "", "resolve a Class[:Caption]/... path below the window")

	_ = treeCmd.MarkFlagRequired("class")
}

func runTree(cmd *cobra.Command, _ []string) error {
	var segments []resolver.Segment

	if treeOpts.path != "" {
		var err error
		if segments, err = resolver.ParsePath(treeOpts.path); err != nil {
			return err
		}
	}

	p, err := platform()
	if err != nil {
		return err
	}

	root := p.Windows.FindWindow(treeOpts.class, treeOpts.caption)
	if root == 0 {
		return fmt.Errorf("no window with class %q and caption %q", treeOpts.class, treeOpts.caption)
	}

	if segments == nil {
		return writeYAML(cmd, windows.ChildInfo{
			Hwnd:      root,
			ClassName: p.Windows.ClassName(root),
			Text:      p.Windows.WindowText(root),
			Children:  p.Tree(root),
		})
	}

	matches, err := resolver.Resolve(p.Windows, root, segments)
	if err != nil {
		return err
	}

	out := make([]windows.ChildInfo, 0, len(matches))
	for _, hwnd := range matches {
		text, ok := p.Windows.ControlText(hwnd)
		if !ok {
			text = p.Windows.WindowText(hwnd)
		}

		out = append(out, windows.ChildInfo{Hwnd: hwnd, ClassName: p.Windows.ClassName(hwnd), Text: text})
	}

	return writeYAML(cmd, out)
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return enc.Close()
}
