package service

import "errors"

var (
	// ErrNotLoaded is returned by queries issued before Start succeeded.
	ErrNotLoaded = errors.New("dataset not loaded")
	// ErrNoStore is returned by Start when no dataset store was configured.
	ErrNoStore = errors.New("no dataset store configured")
)
