// Package timeouts defines timing constants used throughout the application.
// These values have been empirically determined for reliable interaction with
// the Windows common dialogs and the embedded document viewer.
package timeouts

import "time"

const (
	// Polling

	// StatePollingInterval is the delay between checks in every polling loop
	// (dialog appearance, dialog closure, file materialisation, viewer state).
	StatePollingInterval = 100 * time.Millisecond

	// Common Dialog Timeouts

	// DialogOpenTimeout is the maximum time to wait for an Open or Save As
	// dialog window to appear.
	DialogOpenTimeout = 120 * time.Second

	// DialogHandlesTimeout is the maximum time to keep resolving the dialog's
	// controls. They are created some time after the dialog window itself.
	DialogHandlesTimeout = 120 * time.Second

	// DialogCloseTimeout is the maximum time to wait for a dialog to close
	// after its Open, Save or Cancel button was clicked.
	DialogCloseTimeout = 120 * time.Second

	// FileMaterializeTimeout is the maximum time to wait for a saved file to
	// appear on disk. Closing the dialog does not mean the write finished.
	FileMaterializeTimeout = 300 * time.Second

	// DialogAppearSettleDelay lets a freshly detected dialog finish creating
	// its child controls before they are resolved.
	DialogAppearSettleDelay = 100 * time.Millisecond

	// DialogInputDelay is the pause before text is injected into a dialog's
	// file name field.
	DialogInputDelay = 500 * time.Millisecond

	// Viewer Timeouts

	// ViewerStateTimeout is the maximum time to wait for the embedded viewer
	// to unload the previous document or finish loading the next one.
	ViewerStateTimeout = 120 * time.Second

	// Host Window Timeouts

	// WindowAppearTimeout is the maximum time to wait for the host window
	// (browser or application) to appear.
	WindowAppearTimeout = 60 * time.Second

	// ResponsiveProbeTimeout bounds the WM_NULL round trip used to decide
	// whether a window's thread is pumping messages.
	ResponsiveProbeTimeout = 1 * time.Second

	// StabilityCheckInterval is the delay between consecutive responsiveness
	// checks to ensure a window is stable and ready for interaction.
	StabilityCheckInterval = 500 * time.Millisecond

	// Windows API Interaction Delays

	// WindowMessageDelay is the delay after focus changes to allow the target
	// application to process the message.
	WindowMessageDelay = 500 * time.Millisecond

	// KeystrokeDelay is the delay between synthetic key and button events.
	KeystrokeDelay = 50 * time.Millisecond
)
