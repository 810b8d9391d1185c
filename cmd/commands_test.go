package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/comdlg/internal/config"
	"github.com/Norgate-AV/comdlg/internal/dialog"
	"github.com/Norgate-AV/comdlg/internal/testutil"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

// fastDialogs removes the fixed pauses so dialog commands finish immediately
func fastDialogs(t *testing.T) {
	t.Setenv("COMDLG_DIALOG_SETTLE_DELAY", "0s")
	t.Setenv("COMDLG_DIALOG_INPUT_DELAY", "0s")
}

func addOpenDialog(wm *testutil.MockWindowManager) (root, edit uintptr) {
	root = wm.AddWindow(0, "#32770", "Open")
	ex := wm.AddWindow(root, "ComboBoxEx32", "")
	combo := wm.AddWindow(ex, "ComboBox", "")
	edit = wm.AddWindow(combo, "Edit", "")
	wm.AddWindow(root, "ComboBox", "")

	open := wm.AddWindow(root, "Button", "&Open")
	wm.AddWindow(root, "Button", "Cancel")
	wm.OnClick(open, func() { wm.Destroy(root) })

	return root, edit
}

func TestWindowsCmd(t *testing.T) {
	procs := testutil.NewMockProcessWindows().WithWindows(
		windows.WindowInfo{Hwnd: 0x100, Title: "Statement - Google Chrome", Class: "Chrome_WidgetWin_1", Pid: 42, Process: "chrome.exe"},
		windows.WindowInfo{Hwnd: 0x200, Title: "Untitled - Notepad", Class: "Notepad", Pid: 7, Process: "notepad.exe"},
	)
	withPlatform(t, mockPlatform(testutil.NewMockWindowManager(), procs))

	tests := []struct {
		name  string
		args  []string
		hwnds []uintptr
	}{
		{"all windows", nil, []uintptr{0x100, 0x200}},
		{"by process", []string{"--process", "CHROME.EXE"}, []uintptr{0x100}},
		{"by title", []string{"--title", "notepad"}, []uintptr{0x200}},
		{"no match", []string{"--process", "firefox.exe"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, append([]string{"windows"}, tt.args...)...)
			require.NoError(t, err)

			var listed []windows.WindowInfo
			require.NoError(t, yaml.Unmarshal([]byte(output), &listed))

			var hwnds []uintptr
			for _, w := range listed {
				hwnds = append(hwnds, w.Hwnd)
			}

			assert.Equal(t, tt.hwnds, hwnds)
		})
	}
}

func TestTreeCmd(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	root, edit := addOpenDialog(wm)
	wm.WithText(edit, "report.pdf")
	withPlatform(t, mockPlatform(wm, testutil.NewMockProcessWindows()))

	t.Run("whole tree", func(t *testing.T) {
		output, err := run(t, "tree", "--class", "#32770", "--caption", "Open")
		require.NoError(t, err)

		var tree windows.ChildInfo
		require.NoError(t, yaml.Unmarshal([]byte(output), &tree))

		assert.Equal(t, root, tree.Hwnd)
		assert.Equal(t, "#32770", tree.ClassName)
		assert.Equal(t, "Open", tree.Text)
		require.Len(t, tree.Children, 4)
		assert.Equal(t, "ComboBoxEx32", tree.Children[0].ClassName)
		assert.Equal(t, "Edit", tree.Children[0].Children[0].Children[0].ClassName)
		assert.Equal(t, "&Open", tree.Children[2].Text)
	})

	t.Run("resolved path", func(t *testing.T) {
		output, err := run(t, "tree", "--class", "#32770", "--path", "ComboBoxEx32/ComboBox/Edit")
		require.NoError(t, err)

		var matches []windows.ChildInfo
		require.NoError(t, yaml.Unmarshal([]byte(output), &matches))

		require.Len(t, matches, 1)
		assert.Equal(t, edit, matches[0].Hwnd)
		assert.Equal(t, "report.pdf", matches[0].Text)
	})

	t.Run("buttons by caption", func(t *testing.T) {
		output, err := run(t, "tree", "--class", "#32770", "--path", "Button:Cancel")
		require.NoError(t, err)

		var matches []windows.ChildInfo
		require.NoError(t, yaml.Unmarshal([]byte(output), &matches))
		require.Len(t, matches, 1)
		assert.Equal(t, "Cancel", matches[0].Text)
	})

	t.Run("missing window", func(t *testing.T) {
		_, err := run(t, "tree", "--class", "#32770", "--caption", "Save As")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no window")
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := run(t, "tree", "--class", "#32770", "--path", "ComboBoxEx32//Edit")
		assert.Error(t, err)
	})

	t.Run("class is required", func(t *testing.T) {
		_, err := run(t, "tree")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "class")
	})
}

func TestOpenCmd(t *testing.T) {
	fastDialogs(t)

	t.Run("completes the dialog", func(t *testing.T) {
		wm := testutil.NewMockWindowManager()
		root, edit := addOpenDialog(wm)
		withPlatform(t, mockPlatform(wm, testutil.NewMockProcessWindows()))

		path := filepath.Join(t.TempDir(), "report.txt")
		require.NoError(t, os.WriteFile(path, []byte("report"), 0o644))

		_, err := run(t, "open", path)
		require.NoError(t, err)

		assert.False(t, wm.IsWindow(root))
		require.Len(t, wm.SetTextCalls, 1)
		assert.Equal(t, edit, wm.SetTextCalls[0].Hwnd)
		assert.Equal(t, path, wm.SetTextCalls[0].Text)
	})

	t.Run("missing file fails before touching the dialog", func(t *testing.T) {
		wm := testutil.NewMockWindowManager()
		addOpenDialog(wm)
		withPlatform(t, mockPlatform(wm, testutil.NewMockProcessWindows()))

		_, err := run(t, "open", filepath.Join(t.TempDir(), "missing.txt"))
		assert.ErrorIs(t, err, dialog.ErrFileNotFound)
		assert.Empty(t, wm.FindWindowCalls)
		assert.Empty(t, wm.SetTextCalls)
	})

	t.Run("hotkey raises the dialog", func(t *testing.T) {
		if testing.Short() {
			t.Skip("waits for the host window to settle")
		}

		wm := testutil.NewMockWindowManager()
		addOpenDialog(wm)
		procs := testutil.NewMockProcessWindows().WithWindows(
			windows.WindowInfo{Hwnd: 0x500, Title: "Untitled - Notepad", Pid: 9, Process: "notepad.exe"},
		)
		p := mockPlatform(wm, procs)
		keyboard := testutil.NewMockKeyboardInjector()
		p.Keyboard = keyboard
		withPlatform(t, p)

		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("notes"), 0o644))

		_, err := run(t, "open", path, "--process", "notepad.exe", "--hotkey", "ctrl+o")
		require.NoError(t, err)

		assert.Equal(t, []string{"ctrl+o"}, keyboard.HotkeyCalls)
		assert.Equal(t, []uintptr{0x500}, wm.SetForegroundCalls)
	})

	t.Run("hotkey flag validation", func(t *testing.T) {
		withPlatform(t, mockPlatform(testutil.NewMockWindowManager(), testutil.NewMockProcessWindows()))

		tests := []struct {
			name string
			args []string
			want string
		}{
			{"hotkey without window", []string{"--hotkey", "ctrl+o"}, "requires --window or --process"},
			{"unknown key", []string{"--hotkey", "ctrl+nope", "--window", "Notepad"}, "nope"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := run(t, append([]string{"open", "file.txt"}, tt.args...)...)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.want)
			})
		}
	})

	t.Run("exactly one file", func(t *testing.T) {
		_, err := run(t, "open")
		assert.Error(t, err)
	})
}

func TestSaveCmd_ExistingFileIsKept(t *testing.T) {
	fastDialogs(t)

	wm := testutil.NewMockWindowManager()
	root := wm.AddWindow(0, "#32770", "Save As")
	view := wm.AddWindow(root, "DUIViewWndClassName", "")
	direct := wm.AddWindow(view, "DirectUIHWND", "")
	nameSink := wm.AddWindow(direct, "FloatNotifySink", "")
	combo := wm.AddWindow(nameSink, "ComboBox", "")
	wm.AddWindow(combo, "Edit", "")
	typeSink := wm.AddWindow(direct, "FloatNotifySink", "")
	wm.AddWindow(typeSink, "ComboBox", "")
	save := wm.AddWindow(root, "Button", "&Save")
	cancel := wm.AddWindow(root, "Button", "Cancel")
	wm.OnClick(cancel, func() { wm.Destroy(root) })
	withPlatform(t, mockPlatform(wm, testutil.NewMockProcessWindows()))

	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	output, err := run(t, "save", path)
	require.NoError(t, err)

	assert.Equal(t, []uintptr{cancel}, wm.ClickCalls)
	assert.NotContains(t, wm.ClickCalls, save)
	assert.Contains(t, output, "--overwrite")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))
}

func TestViewerSaveCmd_Validation(t *testing.T) {
	withPlatform(t, mockPlatform(testutil.NewMockWindowManager(), testutil.NewMockProcessWindows()))

	t.Run("devtools endpoint and selector are required", func(t *testing.T) {
		_, err := run(t, "viewer", "save", "out.pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "devtools-url")
	})

	t.Run("click mode is validated through config", func(t *testing.T) {
		_, err := run(t, "viewer", "save", "out.pdf",
			"--devtools-url", "http://127.0.0.1:9222", "--selector", "#viewer", "--click-mode", "keyboard")
		assert.ErrorIs(t, err, config.ErrInvalid)
	})
}
