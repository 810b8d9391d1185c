package dialog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/comdlg/internal/dialog"
	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/resolver"
	"github.com/Norgate-AV/comdlg/internal/testutil"
	"github.com/Norgate-AV/comdlg/internal/wait"
)

type fakeDialog struct {
	root      uintptr
	fileName  uintptr
	typeCombo uintptr
	action    uintptr
	cancel    uintptr
}

func addOpenDialog(wm *testutil.MockWindowManager) fakeDialog {
	root := wm.AddWindow(0, "#32770", "Open")
	ex := wm.AddWindow(root, "ComboBoxEx32", "")
	combo := wm.AddWindow(ex, "ComboBox", "")

	return fakeDialog{
		root:      root,
		fileName:  wm.AddWindow(combo, "Edit", ""),
		typeCombo: wm.AddWindow(root, "ComboBox", ""),
		action:    wm.AddWindow(root, "Button", "&Open"),
		cancel:    wm.AddWindow(root, "Button", "Cancel"),
	}
}

func addSaveAsDialog(wm *testutil.MockWindowManager, typeFirst bool) fakeDialog {
	root := wm.AddWindow(0, "#32770", "Save As")
	view := wm.AddWindow(root, "DUIViewWndClassName", "")
	direct := wm.AddWindow(view, "DirectUIHWND", "")

	var d fakeDialog
	d.root = root

	addName := func() {
		sink := wm.AddWindow(direct, "FloatNotifySink", "")
		combo := wm.AddWindow(sink, "ComboBox", "")
		d.fileName = wm.AddWindow(combo, "Edit", "")
		wm.WithText(d.fileName, "Untitled.pdf")
	}

	addType := func() {
		sink := wm.AddWindow(direct, "FloatNotifySink", "")
		d.typeCombo = wm.AddWindow(sink, "ComboBox", "")
	}

	if typeFirst {
		addType()
		addName()
	} else {
		addName()
		addType()
	}

	d.action = wm.AddWindow(root, "Button", "&Save")
	d.cancel = wm.AddWindow(root, "Button", "Cancel")

	return d
}

// closeOnClick makes the dialog disappear when hwnd is clicked
func closeOnClick(wm *testutil.MockWindowManager, d fakeDialog, hwnd uintptr) {
	wm.OnClick(hwnd, func() { wm.Destroy(d.root) })
}

func newController(t *testing.T, wm *testutil.MockWindowManager) (*dialog.Controller, afero.Fs, string, *testutil.FakeClock) {
	t.Helper()

	fs, dir := testutil.MemFs(t)
	clock := testutil.NewFakeClock()

	c := dialog.NewController(logger.NewNoOpLogger(), &dialog.Dependencies{
		WindowMgr: wm,
		Fs:        fs,
		Clock:     clock,
	})

	return c, fs, dir, clock
}

func TestOpen_Success(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addOpenDialog(wm)
	closeOnClick(wm, d, d.action)

	c, fs, dir, clock := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "report.pdf"), "pdf")

	s, err := c.Open(context.Background(), path, dialog.OpenOptions{})
	require.NoError(t, err)

	assert.Equal(t, dialog.Closed, s.State())
	assert.Equal(t, d.root, s.Root)
	assert.Equal(t, d.fileName, s.FileName)
	assert.Equal(t, d.typeCombo, s.TypeCombo)
	assert.Equal(t, d.action, s.Action)
	assert.Equal(t, d.cancel, s.Cancel)
	assert.Equal(t, path, s.Path)
	assert.NotEmpty(t, s.ID)

	assert.Equal(t, []testutil.SetTextCall{{Hwnd: d.fileName, Text: path}}, wm.SetTextCalls)
	assert.Equal(t, []uintptr{d.action}, wm.ClickCalls)

	// Settle delay then input delay
	assert.Equal(t, dialog.DefaultTiming().SettleDelay+dialog.DefaultTiming().InputDelay, clock.Slept())
}

func TestOpen_FileNotFound(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addOpenDialog(wm)
	closeOnClick(wm, d, d.action)

	c, fs, dir, _ := newController(t, wm)
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "folder"), 0o755))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.pdf")},
		{"directory", filepath.Join(dir, "folder")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggered := false
			s, err := c.Open(context.Background(), tt.path, dialog.OpenOptions{
				Trigger: func(context.Context) error {
					triggered = true
					return nil
				},
			})

			require.Error(t, err)
			assert.True(t, errors.Is(err, dialog.ErrFileNotFound))
			assert.Nil(t, s)
			assert.False(t, triggered)
		})
	}

	assert.Empty(t, wm.SetTextCalls)
	assert.Empty(t, wm.ClickCalls)
	assert.Empty(t, wm.FindWindowCalls)
	assert.True(t, wm.IsWindow(d.root))
}

func TestOpen_TriggerShowsDialog(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	c, fs, dir, _ := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	_, err := c.Open(context.Background(), path, dialog.OpenOptions{
		Trigger: func(context.Context) error {
			d := addOpenDialog(wm)
			closeOnClick(wm, d, d.action)
			return nil
		},
	})

	require.NoError(t, err)
	assert.Len(t, wm.ClickCalls, 1)
}

func TestOpen_TriggerError(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	c, fs, dir, _ := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	boom := errors.New("no foreground window")
	_, err := c.Open(context.Background(), path, dialog.OpenOptions{
		Trigger: func(context.Context) error { return boom },
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, wm.FindWindowCalls)
}

func TestOpen_DialogNeverAppears(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	c, fs, dir, clock := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	_, err := c.Open(context.Background(), path, dialog.OpenOptions{})
	require.Error(t, err)

	var timeout *wait.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "Open dialog open", timeout.Op)
	assert.Equal(t, dialog.DefaultTiming().OpenTimeout, clock.Slept())
	assert.Empty(t, wm.SetTextCalls)
}

func TestOpen_ControlsNeverResolve(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	root := wm.AddWindow(0, "#32770", "Open")
	wm.AddWindow(root, "Button", "&Open")
	wm.AddWindow(root, "Button", "Cancel")

	c, fs, dir, _ := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	_, err := c.Open(context.Background(), path, dialog.OpenOptions{})

	var timeout *wait.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "Open dialog controls", timeout.Op)
	assert.Empty(t, wm.ClickCalls)
}

func TestOpen_AmbiguousControlsFailFast(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addOpenDialog(wm)
	wm.AddWindow(d.root, "ComboBox", "")

	c, fs, dir, clock := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	_, err := c.Open(context.Background(), path, dialog.OpenOptions{})
	assert.ErrorIs(t, err, resolver.ErrAmbiguous)
	assert.False(t, errors.Is(err, wait.ErrTimeout))

	// Only the settle delay, no polling
	assert.Equal(t, 1, clock.SleepCount())
	assert.Empty(t, wm.ClickCalls)
}

func TestOpen_DialogStaysOpen(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	addOpenDialog(wm)

	c, fs, dir, _ := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	s, err := c.Open(context.Background(), path, dialog.OpenOptions{})

	var timeout *wait.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "Open dialog close", timeout.Op)
	require.NotNil(t, s)
	assert.Equal(t, dialog.Interacting, s.State())
}

func TestOpen_ContextCancelled(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	c, fs, dir, _ := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Open(ctx, path, dialog.OpenOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSave_NewFile(t *testing.T) {
	for _, typeFirst := range []bool{false, true} {
		t.Run(map[bool]string{false: "name sink first", true: "type sink first"}[typeFirst], func(t *testing.T) {
			wm := testutil.NewMockWindowManager()
			d := addSaveAsDialog(wm, typeFirst)

			c, fs, dir, _ := newController(t, wm)
			path := filepath.Join(dir, "out.pdf")

			wm.OnClick(d.action, func() {
				wm.Destroy(d.root)
				testutil.WriteFile(t, fs, path, "saved")
			})

			result, err := c.Save(context.Background(), path, dialog.SaveOptions{})
			require.NoError(t, err)

			assert.False(t, result.Cancelled)
			assert.Equal(t, path, result.Path)
			assert.Equal(t, d.fileName, result.Session.FileName)
			assert.Equal(t, d.typeCombo, result.Session.TypeCombo)
			assert.Equal(t, dialog.Closed, result.Session.State())
			assert.Equal(t, []testutil.SetTextCall{{Hwnd: d.fileName, Text: path}}, wm.SetTextCalls)
			assert.Equal(t, []uintptr{d.action}, wm.ClickCalls)
		})
	}
}

func TestSave_ExistingFileWithoutOverwriteCancels(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addSaveAsDialog(wm, false)
	closeOnClick(wm, d, d.cancel)

	c, fs, dir, _ := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "out.pdf"), "original")

	wm.OnClick(d.action, func() {
		t.Error("save must not be clicked")
	})

	result, err := c.Save(context.Background(), path, dialog.SaveOptions{Overwrite: false})
	require.NoError(t, err)

	assert.True(t, result.Cancelled)
	assert.Equal(t, dialog.Closed, result.Session.State())
	assert.Equal(t, []uintptr{d.cancel}, wm.ClickCalls)
	assert.Equal(t, path, wm.Text(d.fileName))
	assert.Equal(t, "original", testutil.ReadFile(t, fs, path))
}

func TestSave_ExistingFileWithOverwrite(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addSaveAsDialog(wm, false)

	c, fs, dir, clock := newController(t, wm)
	path := testutil.WriteFile(t, fs, filepath.Join(dir, "out.pdf"), "original")

	var existedAtClick bool
	clickedAt := 0

	wm.OnClick(d.action, func() {
		existedAtClick, _ = afero.Exists(fs, path)
		clickedAt = clock.SleepCount()
		wm.Destroy(d.root)
	})

	// The download lands a few polls after the dialog closes
	clock.OnSleep(func(n int) {
		if clickedAt > 0 && n == clickedAt+3 {
			testutil.WriteFile(t, fs, path, "replacement")
		}
	})

	result, err := c.Save(context.Background(), path, dialog.SaveOptions{Overwrite: true})
	require.NoError(t, err)

	assert.False(t, result.Cancelled)
	assert.False(t, existedAtClick)
	assert.Equal(t, clickedAt+3, clock.SleepCount())
	assert.Equal(t, "replacement", testutil.ReadFile(t, fs, path))
	assert.Equal(t, []uintptr{d.action}, wm.ClickCalls)
}

func TestSave_CreatesMissingDirectory(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addSaveAsDialog(wm, false)

	c, fs, dir, _ := newController(t, wm)
	path := filepath.Join(dir, "2024", "March", "out.pdf")

	wm.OnClick(d.action, func() {
		isDir, _ := afero.DirExists(fs, filepath.Dir(path))
		assert.True(t, isDir)

		wm.Destroy(d.root)
		testutil.WriteFile(t, fs, path, "saved")
	})

	_, err := c.Save(context.Background(), path, dialog.SaveOptions{CreateDirectory: true})
	require.NoError(t, err)
}

func TestSave_MissingDirectoryWithoutCreateLeavesDialogToFail(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addSaveAsDialog(wm, false)

	c, fs, dir, _ := newController(t, wm)
	path := filepath.Join(dir, "missing", "out.pdf")

	_, err := c.Save(context.Background(), path, dialog.SaveOptions{})

	var timeout *wait.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "Save As dialog close", timeout.Op)

	exists, _ := afero.DirExists(fs, filepath.Dir(path))
	assert.False(t, exists)
	assert.Equal(t, []uintptr{d.action}, wm.ClickCalls)
}

func TestSave_FileNeverAppears(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addSaveAsDialog(wm, false)
	closeOnClick(wm, d, d.action)

	c, _, dir, clock := newController(t, wm)
	path := filepath.Join(dir, "out.pdf")

	_, err := c.Save(context.Background(), path, dialog.SaveOptions{})

	var timeout *wait.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "file "+path, timeout.Op)
	assert.Equal(t, dialog.DefaultTiming().FileTimeout, timeout.Deadline)
	assert.GreaterOrEqual(t, clock.Slept(), dialog.DefaultTiming().FileTimeout)
}

func TestSave_UnreadableEditIsNotTheFileNameField(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	d := addSaveAsDialog(wm, false)
	wm.WithUnreadable(d.fileName)

	c, _, dir, _ := newController(t, wm)

	_, err := c.Save(context.Background(), filepath.Join(dir, "out.pdf"), dialog.SaveOptions{})

	var timeout *wait.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "Save As dialog controls", timeout.Op)
	assert.Empty(t, wm.SetTextCalls)
}

func TestKindAndStateStrings(t *testing.T) {
	assert.Equal(t, "Open", dialog.OpenDialog.String())
	assert.Equal(t, "Save As", dialog.SaveAsDialog.String())
	assert.Equal(t, "Kind(7)", dialog.Kind(7).String())

	assert.Equal(t, "AwaitingOpen", dialog.AwaitingOpen.String())
	assert.Equal(t, "HandlesResolving", dialog.HandlesResolving.String())
	assert.Equal(t, "Ready", dialog.Ready.String())
	assert.Equal(t, "Interacting", dialog.Interacting.String())
	assert.Equal(t, "Closed", dialog.Closed.String())
	assert.Equal(t, "State(9)", dialog.State(9).String())
}
