package testutil

import (
	"sync"

	"github.com/Norgate-AV/comdlg/internal/windows"
)

// MockProcessWindows implements interfaces.ProcessWindows for testing.
// Successive EnumerateWindows calls return successive snapshots; the last
// snapshot repeats.
type MockProcessWindows struct {
	mu              sync.Mutex
	snapshots       [][]windows.WindowInfo
	next            int
	responsive      map[uintptr][]bool
	EnumerateCalls  int
	ResponsiveCalls []uintptr
}

func NewMockProcessWindows() *MockProcessWindows {
	return &MockProcessWindows{
		responsive:      make(map[uintptr][]bool),
		ResponsiveCalls: []uintptr{},
	}
}

func (m *MockProcessWindows) EnumerateWindows() []windows.WindowInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnumerateCalls++

	if len(m.snapshots) == 0 {
		return nil
	}

	snapshot := m.snapshots[m.next]
	if m.next < len(m.snapshots)-1 {
		m.next++
	}

	return snapshot
}

func (m *MockProcessWindows) IsResponsive(hwnd uintptr) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ResponsiveCalls = append(m.ResponsiveCalls, hwnd)

	results, ok := m.responsive[hwnd]
	if !ok || len(results) == 0 {
		return true
	}

	result := results[0]
	if len(results) > 1 {
		m.responsive[hwnd] = results[1:]
	}

	return result
}

// Helper methods for fluent configuration
func (m *MockProcessWindows) WithWindows(infos ...windows.WindowInfo) *MockProcessWindows {
	m.snapshots = append(m.snapshots, infos)
	return m
}

// WithResponsive scripts the answers for hwnd; the last answer repeats
func (m *MockProcessWindows) WithResponsive(hwnd uintptr, results ...bool) *MockProcessWindows {
	m.responsive[hwnd] = results
	return m
}
