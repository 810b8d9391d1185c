package dialog

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/testutil"
)

func TestStaleSessionRefusesInteraction(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	root := wm.AddWindow(0, DialogClass, "Save As")
	edit := wm.AddWindow(root, "Edit", "")
	save := wm.AddWindow(root, "Button", "&Save")

	c := NewController(logger.NewNoOpLogger(), &Dependencies{WindowMgr: wm, Clock: testutil.NewFakeClock()})

	s := newSession(SaveAsDialog)
	s.Root, s.FileName, s.Action = root, edit, save

	require.NoError(t, c.ensureLive(s))

	wm.Destroy(root)

	err := c.setFileName(s, `C:\out.pdf`)
	assert.True(t, errors.Is(err, ErrStaleSession))

	err = c.click(s, s.Action, "Save")
	assert.True(t, errors.Is(err, ErrStaleSession))

	assert.Empty(t, wm.SetTextCalls)
	assert.Empty(t, wm.ClickCalls)
}

func TestRejectedMessageIsControlNotFound(t *testing.T) {
	wm := testutil.NewMockWindowManager()
	root := wm.AddWindow(0, DialogClass, "Open")
	button := wm.AddWindow(root, "Button", "&Open")

	c := NewController(logger.NewNoOpLogger(), &Dependencies{WindowMgr: wm, Clock: testutil.NewFakeClock()})

	s := newSession(OpenDialog)
	s.Root, s.Action, s.FileName = root, button, 0xdead

	err := c.setFileName(s, `C:\in.pdf`)
	assert.ErrorIs(t, err, ErrControlNotFound)
}

func TestNewController_Defaults(t *testing.T) {
	deps := &Dependencies{WindowMgr: testutil.NewMockWindowManager()}
	NewController(logger.NewNoOpLogger(), deps)

	assert.NotNil(t, deps.Fs)
	assert.NotNil(t, deps.Clock)
	assert.Equal(t, DefaultTiming(), deps.Timing)
}

func TestSessionLockSpansControllers(t *testing.T) {
	defer goleak.VerifyNone(t)

	wm := testutil.NewMockWindowManager()
	fs, dir := testutil.MemFs(t)
	source := testutil.WriteFile(t, fs, filepath.Join(dir, "in.pdf"), "pdf")

	saver := NewController(logger.NewNoOpLogger(), &Dependencies{WindowMgr: wm, Fs: fs, Clock: testutil.NewFakeClock()})
	opener := NewController(logger.NewNoOpLogger(), &Dependencies{WindowMgr: wm, Fs: fs, Clock: testutil.NewFakeClock()})

	var (
		mu     sync.Mutex
		events []string
	)
	record := func(e string) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	errRaise := errors.New("no dialog raised")
	saveStarted := make(chan struct{})
	openStarted := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, err := saver.Save(context.Background(), filepath.Join(dir, "out.pdf"), SaveOptions{
			Trigger: func(context.Context) error {
				record("save trigger")
				close(saveStarted)
				<-release
				record("save trigger done")
				return errRaise
			},
		})
		assert.ErrorIs(t, err, errRaise)
	}()

	<-saveStarted

	go func() {
		defer wg.Done()
		_, err := opener.Open(context.Background(), source, OpenOptions{
			Trigger: func(context.Context) error {
				record("open trigger")
				close(openStarted)
				return errRaise
			},
		})
		assert.ErrorIs(t, err, errRaise)
	}()

	select {
	case <-openStarted:
		t.Fatal("second controller started a session while the first was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	wg.Wait()

	assert.Equal(t, []string{"save trigger", "save trigger done", "open trigger"}, events)
	assert.True(t, sessionMu.TryLock())
	sessionMu.Unlock()
}
