package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidFontSize is returned for non-positive font sizes.
	ErrInvalidFontSize = errors.New("text: font size must be positive")

	// ErrUnknownMeasurer is returned by ParseMeasurer for unknown strategy names.
	ErrUnknownMeasurer = errors.New("text: unknown measurer")
)
