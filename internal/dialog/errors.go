package dialog

import "errors"

var (
	// ErrFileNotFound is returned by Open before any window interaction when the source file does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrStaleSession is returned when the dialog window closed while the session was still using it
	ErrStaleSession = errors.New("dialog window no longer exists")

	// ErrControlNotFound is returned when a resolved control rejects a message
	ErrControlNotFound = errors.New("dialog control not found")
)
