package dataset

import (
	"context"
	"errors"
)

// Sentinel kinds for dataset errors.
var (
	// ErrDataUnavailable reports a source that is missing, unreadable or not valid CSV.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrSchemaMismatch reports an absent required column or a cell that does not fit its record type.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// ErrorKind maps a load error to a short label for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}
