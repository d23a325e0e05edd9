package catalog

import "errors"

var (
	// ErrIncomplete is returned when name, price or sku is blank.
	ErrIncomplete = errors.New("catalog: name, price and sku are required")
	// ErrInvalidRowKey is returned for row keys that are neither "new" nor a positive id.
	ErrInvalidRowKey = errors.New("catalog: invalid row key")
)
