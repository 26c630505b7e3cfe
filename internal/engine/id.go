package engine

import "github.com/google/uuid"

// newRequestID tags one generation in the logs.
func newRequestID() string {
	return uuid.NewString()
}
