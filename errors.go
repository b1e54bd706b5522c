package memowall

import "errors"

// Sentinel errors for library operations.
var (
	// ErrFontLoad reports a font asset that could not be read or parsed.
	// It is a configuration problem and is never retried.
	ErrFontLoad = errors.New("memowall: font asset unavailable")

	ErrInvalidCanvas   = errors.New("memowall: invalid canvas size")
	ErrInvalidFontSize = errors.New("memowall: invalid base font size")
	ErrInvalidScale    = errors.New("memowall: minimum scale must be in (0, 1]")
	ErrUnknownTheme    = errors.New("memowall: unknown theme")
	ErrUnknownDialect  = errors.New("memowall: unknown dialect")
)
