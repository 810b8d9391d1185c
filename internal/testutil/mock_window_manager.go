package testutil

import (
	"sync"

	"github.com/Norgate-AV/comdlg/internal/windows"
)

type mockWindow struct {
	parent     uintptr
	class      string
	caption    string
	text       string
	children   []uintptr
	alive      bool
	unreadable bool
	rect       windows.Rect
}

// MockWindowManager is an in-memory window tree that records all calls for verification
type MockWindowManager struct {
	mu         sync.Mutex
	windows    map[uintptr]*mockWindow
	nextHwnd   uintptr
	clickHooks map[uintptr]func()

	SetTextCalls        []SetTextCall
	ClickCalls          []uintptr
	FindWindowCalls     []FindWindowCall
	SetForegroundCalls  []uintptr
	SetForegroundResult bool
	IsElevatedResult    bool
}

type SetTextCall struct {
	Hwnd uintptr
	Text string
}

type FindWindowCall struct {
	ClassName string
	Caption   string
}

func NewMockWindowManager() *MockWindowManager {
	return &MockWindowManager{
		windows:             make(map[uintptr]*mockWindow),
		nextHwnd:            0x1000,
		clickHooks:          make(map[uintptr]func()),
		SetTextCalls:        []SetTextCall{},
		ClickCalls:          []uintptr{},
		SetForegroundResult: true,
		IsElevatedResult:    true,
	}
}

// AddWindow creates a live window under parent (0 for top level) and returns its handle
func (m *MockWindowManager) AddWindow(parent uintptr, className, caption string) uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextHwnd += 0x10
	hwnd := m.nextHwnd

	m.windows[hwnd] = &mockWindow{
		parent:  parent,
		class:   className,
		caption: caption,
		text:    caption,
		alive:   true,
	}

	if p, ok := m.windows[parent]; ok {
		p.children = append(p.children, hwnd)
	}

	return hwnd
}

// Destroy marks a window and all of its descendants as no longer alive
func (m *MockWindowManager) Destroy(hwnd uintptr) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.destroyLocked(hwnd)
}

func (m *MockWindowManager) destroyLocked(hwnd uintptr) {
	w, ok := m.windows[hwnd]
	if !ok {
		return
	}

	w.alive = false
	for _, child := range w.children {
		m.destroyLocked(child)
	}
}

// Text returns the current text content of a window
func (m *MockWindowManager) Text(hwnd uintptr) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.windows[hwnd]; ok {
		return w.text
	}

	return ""
}

// SetTextCount returns the number of SetControlText calls
func (m *MockWindowManager) SetTextCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.SetTextCalls)
}

// ClickCount returns the number of ClickButton calls
func (m *MockWindowManager) ClickCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.ClickCalls)
}

func (m *MockWindowManager) ChildWindows(hwnd uintptr) []uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[hwnd]
	if !ok || !w.alive {
		return nil
	}

	children := make([]uintptr, 0, len(w.children))
	for _, child := range w.children {
		if m.windows[child].alive {
			children = append(children, child)
		}
	}

	return children
}

func (m *MockWindowManager) ClassName(hwnd uintptr) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.windows[hwnd]; ok && w.alive {
		return w.class
	}

	return ""
}

func (m *MockWindowManager) WindowText(hwnd uintptr) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.windows[hwnd]; ok && w.alive {
		return w.caption
	}

	return ""
}

func (m *MockWindowManager) FindWindow(className, caption string) uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindWindowCalls = append(m.FindWindowCalls, FindWindowCall{className, caption})

	var found uintptr
	for hwnd, w := range m.windows {
		if w.parent != 0 || !w.alive {
			continue
		}

		if className != "" && w.class != className {
			continue
		}

		if caption != "" && w.caption != caption {
			continue
		}

		// Lowest handle wins so results do not depend on map order
		if found == 0 || hwnd < found {
			found = hwnd
		}
	}

	return found
}

func (m *MockWindowManager) ControlText(hwnd uintptr) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[hwnd]
	if !ok || !w.alive || w.unreadable {
		return "", false
	}

	return w.text, true
}

func (m *MockWindowManager) SetControlText(hwnd uintptr, text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetTextCalls = append(m.SetTextCalls, SetTextCall{hwnd, text})

	w, ok := m.windows[hwnd]
	if !ok || !w.alive {
		return false
	}

	w.text = text
	return true
}

func (m *MockWindowManager) ClickButton(hwnd uintptr) bool {
	m.mu.Lock()
	m.ClickCalls = append(m.ClickCalls, hwnd)
	w, ok := m.windows[hwnd]
	alive := ok && w.alive
	hook := m.clickHooks[hwnd]
	m.mu.Unlock()

	if !alive {
		return false
	}

	if hook != nil {
		hook()
	}

	return true
}

func (m *MockWindowManager) IsWindow(hwnd uintptr) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[hwnd]
	return ok && w.alive
}

func (m *MockWindowManager) WindowRect(hwnd uintptr) (windows.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[hwnd]
	if !ok || !w.alive {
		return windows.Rect{}, false
	}

	return w.rect, true
}

func (m *MockWindowManager) SetForeground(hwnd uintptr) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetForegroundCalls = append(m.SetForegroundCalls, hwnd)
	return m.SetForegroundResult
}

func (m *MockWindowManager) IsElevated() bool {
	return m.IsElevatedResult
}

// Helper methods for fluent configuration
func (m *MockWindowManager) WithElevated(elevated bool) *MockWindowManager {
	m.IsElevatedResult = elevated
	return m
}

func (m *MockWindowManager) WithSetForegroundResult(result bool) *MockWindowManager {
	m.SetForegroundResult = result
	return m
}

// WithRect sets the screen rectangle reported for hwnd
func (m *MockWindowManager) WithRect(hwnd uintptr, rect windows.Rect) *MockWindowManager {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.windows[hwnd]; ok {
		w.rect = rect
	}

	return m
}

// WithText sets the text content of a control without changing its caption
func (m *MockWindowManager) WithText(hwnd uintptr, text string) *MockWindowManager {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.windows[hwnd]; ok {
		w.text = text
	}

	return m
}

// WithUnreadable makes WM_GETTEXT on hwnd fail
func (m *MockWindowManager) WithUnreadable(hwnd uintptr) *MockWindowManager {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.windows[hwnd]; ok {
		w.unreadable = true
	}

	return m
}

// OnClick registers a hook run after hwnd is clicked
func (m *MockWindowManager) OnClick(hwnd uintptr, hook func()) *MockWindowManager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clickHooks[hwnd] = hook
	return m
}
