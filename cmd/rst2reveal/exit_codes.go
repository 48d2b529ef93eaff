package main

import (
	"errors"
	"os"

	rst2reveal "github.com/alnah/go-rst2reveal"
	"github.com/alnah/go-rst2reveal/internal/assets"
	"github.com/alnah/go-rst2reveal/internal/config"
	"github.com/alnah/go-rst2reveal/internal/pipeline"
	"github.com/alnah/go-rst2reveal/internal/plot"
	"github.com/alnah/go-rst2reveal/internal/rst"
)

// Exit codes for the rst2reveal CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, rst2reveal.ErrBrowserConnect) ||
		errors.Is(err, rst2reveal.ErrPageCreate) ||
		errors.Is(err, rst2reveal.ErrPageLoad) ||
		errors.Is(err, rst2reveal.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadStylesheet) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrWriteConfig) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, rst2reveal.ErrUnknownTheme) ||
		errors.Is(err, rst2reveal.ErrUnknownTransition) ||
		errors.Is(err, rst2reveal.ErrInvalidSplitLevel) ||
		errors.Is(err, rst.ErrParse) ||
		errors.Is(err, pipeline.ErrUnknownCodeStyle) ||
		errors.Is(err, plot.ErrBadSpec) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetPath) ||
		errors.Is(err, ErrBadTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
