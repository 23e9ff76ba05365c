package types

import "errors"

// ErrDivisionUndefined marks a ratio whose denominator is zero.
var ErrDivisionUndefined = errors.New("division undefined")
