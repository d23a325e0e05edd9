package client

import "fmt"

// APIError is a non-2xx answer from the product service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("product service returned status %d", e.Status)
	}
	return fmt.Sprintf("product service returned status %d: %s", e.Status, e.Message)
}

// ServerMessage returns the human-readable message sent by the service.
func (e *APIError) ServerMessage() (string, bool) {
	return e.Message, e.Message != ""
}
