package main

import (
	"errors"
	"os"

	"github.com/arran4/memowall"
	"github.com/arran4/memowall/internal/config"
)

// Exit codes for the memowall CLI.
const (
	ExitSuccess = 0 // Rendered successfully
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // Input or output file problems
	ExitFont    = 4 // A font asset could not be loaded
)

// exitCodeFor maps an error to an exit code. Callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, memowall.ErrFontLoad) {
		return ExitFont
	}
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidColor) ||
		errors.Is(err, config.ErrInvalidSize) ||
		errors.Is(err, memowall.ErrInvalidCanvas) ||
		errors.Is(err, memowall.ErrInvalidFontSize) ||
		errors.Is(err, memowall.ErrInvalidScale) ||
		errors.Is(err, memowall.ErrUnknownTheme) ||
		errors.Is(err, memowall.ErrUnknownDialect) ||
		errors.Is(err, ErrUnsupported) {
		return ExitUsage
	}
	return ExitGeneral
}
