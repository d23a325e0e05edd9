package controller

import "errors"

var (
	// ErrNotConfirmed is returned when the user declines a delete.
	ErrNotConfirmed = errors.New("controller: delete not confirmed")
	// ErrUnknownRow is returned for keys that match no visible row.
	ErrUnknownRow = errors.New("controller: unknown row")
	// ErrNotLoaded is returned by row operations before a successful Load.
	ErrNotLoaded = errors.New("controller: products not loaded")
)
