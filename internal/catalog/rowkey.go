package catalog

import "strconv"

// RowKey addresses a row: a product id or PendingKey for the placeholder.
type RowKey string

// PendingKey addresses the unsaved placeholder row.
const PendingKey RowKey = "new"

// SavedKey returns the key of a persisted product.
func SavedKey(id int64) RowKey {
	return RowKey(strconv.FormatInt(id, 10))
}

// ParseRowKey validates a key taken from a URL.
func ParseRowKey(raw string) (RowKey, error) {
	if raw == string(PendingKey) {
		return PendingKey, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return "", ErrInvalidRowKey
	}
	return SavedKey(id), nil
}

// IsPending reports whether k addresses the placeholder row.
func (k RowKey) IsPending() bool {
	return k == PendingKey
}

// ProductID returns the id behind a saved key.
func (k RowKey) ProductID() (int64, bool) {
	if k.IsPending() {
		return 0, false
	}
	id, err := strconv.ParseInt(string(k), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
