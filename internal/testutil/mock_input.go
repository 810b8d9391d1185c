package testutil

import (
	"image/color"
	"sync"

	"github.com/Norgate-AV/comdlg/internal/windows"
)

// MockPixelSampler returns a scripted sequence of colours. The last colour
// repeats once the sequence is exhausted.
type MockPixelSampler struct {
	mu      sync.Mutex
	colors  []color.RGBA
	next    int
	Err     error
	Samples []windows.Point
}

func NewMockPixelSampler(colors ...color.RGBA) *MockPixelSampler {
	return &MockPixelSampler{colors: colors, Samples: []windows.Point{}}
}

func (m *MockPixelSampler) PixelColor(x, y int32) (color.RGBA, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Samples = append(m.Samples, windows.Point{X: x, Y: y})

	if m.Err != nil {
		return color.RGBA{}, m.Err
	}

	if len(m.colors) == 0 {
		return color.RGBA{A: 0xff}, nil
	}

	c := m.colors[m.next]
	if m.next < len(m.colors)-1 {
		m.next++
	}

	return c, nil
}

// WithColors replaces the remaining sequence
func (m *MockPixelSampler) WithColors(colors ...color.RGBA) *MockPixelSampler {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.colors = colors
	m.next = 0
	return m
}

func (m *MockPixelSampler) WithError(err error) *MockPixelSampler {
	m.Err = err
	return m
}

// SampleCount returns how many pixels were read
func (m *MockPixelSampler) SampleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Samples)
}

// MockPointerInjector tracks the simulated pointer position
type MockPointerInjector struct {
	Position   windows.Point
	MoveCalls  []windows.Point
	ClickCalls []windows.Point
	ClickErr   error
	onClick    func(windows.Point)
}

func NewMockPointerInjector(start windows.Point) *MockPointerInjector {
	return &MockPointerInjector{
		Position:   start,
		MoveCalls:  []windows.Point{},
		ClickCalls: []windows.Point{},
	}
}

func (m *MockPointerInjector) CursorPos() (windows.Point, error) {
	return m.Position, nil
}

func (m *MockPointerInjector) MoveTo(p windows.Point) error {
	m.MoveCalls = append(m.MoveCalls, p)
	m.Position = p
	return nil
}

func (m *MockPointerInjector) ClickAt(p windows.Point) error {
	m.ClickCalls = append(m.ClickCalls, p)
	m.Position = p

	if m.ClickErr != nil {
		return m.ClickErr
	}

	if m.onClick != nil {
		m.onClick(p)
	}

	return nil
}

func (m *MockPointerInjector) WithClickError(err error) *MockPointerInjector {
	m.ClickErr = err
	return m
}

// OnClick registers a hook run after every successful click
func (m *MockPointerInjector) OnClick(hook func(windows.Point)) *MockPointerInjector {
	m.onClick = hook
	return m
}

// MockKeyboardInjector records hotkeys sent
type MockKeyboardInjector struct {
	HotkeyCalls []string
	Err         error
	onHotkey    func(string)
}

func NewMockKeyboardInjector() *MockKeyboardInjector {
	return &MockKeyboardInjector{HotkeyCalls: []string{}}
}

func (m *MockKeyboardInjector) SendHotkey(combo string) error {
	m.HotkeyCalls = append(m.HotkeyCalls, combo)

	if m.Err != nil {
		return m.Err
	}

	if m.onHotkey != nil {
		m.onHotkey(combo)
	}

	return nil
}

func (m *MockKeyboardInjector) WithError(err error) *MockKeyboardInjector {
	m.Err = err
	return m
}

// OnHotkey registers a hook run after every hotkey sent
func (m *MockKeyboardInjector) OnHotkey(hook func(string)) *MockKeyboardInjector {
	m.onHotkey = hook
	return m
}
