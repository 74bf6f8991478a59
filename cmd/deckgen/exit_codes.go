package main

import (
	"context"
	"errors"
	"os"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/hints"
)

// Exit codes for the deckgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, deck structure or validation
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
	if errors.Is(err, deckgen.ErrRenderEngine) ||
		errors.Is(err, deckgen.ErrBrowserConnect) ||
		errors.Is(err, deckgen.ErrPageCreate) ||
		errors.Is(err, deckgen.ErrPageLoad) ||
		errors.Is(err, deckgen.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDeck) ||
		errors.Is(err, ErrWriteArtifact) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoDeckFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, deckgen.ErrInvalidStructure) ||
		errors.Is(err, deckgen.ErrInvalidPageSize) ||
		errors.Is(err, deckgen.ErrInvalidOrientation) ||
		errors.Is(err, deckgen.ErrInvalidMargin) ||
		errors.Is(err, deckgen.ErrStyleNotFound) ||
		errors.Is(err, deckgen.ErrTemplateSetNotFound) ||
		errors.Is(err, deckgen.ErrIncompleteTemplateSet) ||
		errors.Is(err, deckgen.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, deckgen.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, deckgen.ErrStyleNotFound):
		return hints.ForStyleNotFound(deckgen.Styles())
	case errors.Is(err, deckgen.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat()
	case errors.Is(err, deckgen.ErrInvalidStructure):
		return hints.ForDeckFile()
	default:
		return ""
	}
}
