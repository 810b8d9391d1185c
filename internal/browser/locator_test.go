package browser

import (
	"context"
	"testing"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/comdlg/internal/interfaces"
	"github.com/Norgate-AV/comdlg/internal/logger"
)

func TestBoxFromModel(t *testing.T) {
	model := &dom.BoxModel{
		Border: dom.Quad{20, 80, 820, 80, 820, 680, 20, 680},
		Width:  800,
		Height: 600,
	}

	box, err := boxFromModel(model)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ElementBox{X: 20, Y: 80, Width: 800, Height: 600}, box)
}

func TestBoxFromModel_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		model *dom.BoxModel
	}{
		{"nil", nil},
		{"short quad", &dom.BoxModel{Border: dom.Quad{0, 0, 1, 1}, Width: 1, Height: 1}},
		{"zero size", &dom.BoxModel{Border: dom.Quad{0, 0, 0, 0, 0, 0, 0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := boxFromModel(tt.model)
			assert.Error(t, err)
		})
	}
}

func TestPickTarget(t *testing.T) {
	targets := []*target.Info{
		{TargetID: "sw", Type: "service_worker", URL: "https://bank.example.com/sw.js"},
		{TargetID: "inbox", Type: "page", URL: "https://mail.example.com", Title: "Inbox"},
		{TargetID: "stmt", Type: "page", URL: "https://bank.example.com/statements/42", Title: "Statement"},
	}

	got, err := pickTarget(targets, "BANK.example")
	require.NoError(t, err)
	assert.Equal(t, target.ID("stmt"), got.TargetID)

	got, err = pickTarget(targets, "inbox")
	require.NoError(t, err)
	assert.Equal(t, target.ID("inbox"), got.TargetID)

	_, err = pickTarget(targets, "calendar")
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestConnect_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing url", Options{Selector: "iframe.pdfView"}},
		{"missing selector", Options{DevToolsURL: "ws://127.0.0.1:9222/devtools/browser/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Connect(context.Background(), logger.NewNoOpLogger(), tt.opts)
			assert.Error(t, err)
			assert.Nil(t, l)
		})
	}
}
