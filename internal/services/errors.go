package services

import "errors"

// Dashboard service errors.
var (
	// Filter errors
	ErrInvalidFilter    = errors.New("invalid filter specification")
	ErrInvalidYearRange = errors.New("year_from must not exceed year_to")

	// Aggregation errors
	ErrUnknownColumn = errors.New("unknown column")

	// Export errors
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)
