package rst2reveal

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnknownTheme      = errors.New("unknown theme")
	ErrUnknownTransition = errors.New("unknown transition")
	ErrInvalidSplitLevel = errors.New("invalid split level")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
