package testutil

import (
	"context"

	"github.com/Norgate-AV/comdlg/internal/interfaces"
)

// MockElementLocator reports a fixed element box
type MockElementLocator struct {
	BoxResult        interfaces.ElementBox
	BoxErr           error
	BoxCalls         int
	ClickOffsetCalls []ClickOffsetCall
	ClickErr         error
	onClick          func(dx, dy float64)
}

type ClickOffsetCall struct {
	DX float64
	DY float64
}

func NewMockElementLocator(box interfaces.ElementBox) *MockElementLocator {
	return &MockElementLocator{
		BoxResult:        box,
		ClickOffsetCalls: []ClickOffsetCall{},
	}
}

func (m *MockElementLocator) Box(_ context.Context) (interfaces.ElementBox, error) {
	m.BoxCalls++
	return m.BoxResult, m.BoxErr
}

func (m *MockElementLocator) ClickOffset(_ context.Context, dx, dy float64) error {
	m.ClickOffsetCalls = append(m.ClickOffsetCalls, ClickOffsetCall{dx, dy})

	if m.ClickErr != nil {
		return m.ClickErr
	}

	if m.onClick != nil {
		m.onClick(dx, dy)
	}

	return nil
}

func (m *MockElementLocator) WithBoxError(err error) *MockElementLocator {
	m.BoxErr = err
	return m
}

func (m *MockElementLocator) WithClickError(err error) *MockElementLocator {
	m.ClickErr = err
	return m
}

// OnClick registers a hook run after every successful element click
func (m *MockElementLocator) OnClick(hook func(dx, dy float64)) *MockElementLocator {
	m.onClick = hook
	return m
}
