package stats

import (
	"errors"

	"github.com/okian/innings/internal/domain/types"
)

// Sentinel kinds for aggregation errors.
var (
	ErrDivisionUndefined = types.ErrDivisionUndefined
	ErrInvalidBoundary   = errors.New("boundary value must be 4 or 6")
	ErrUnknownMetric     = errors.New("unknown bowling metric")
)
