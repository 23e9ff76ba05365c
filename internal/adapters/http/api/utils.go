package api

import (
	"net/url"
	"strconv"
)

// intParam reads an optional integer query parameter. ok is false when the
// value is present but not an integer no smaller than minValue.
func intParam(q url.Values, name string, def, minValue int) (n int, ok bool) {
	raw := q.Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minValue {
		return 0, false
	}
	return n, true
}
