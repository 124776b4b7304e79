package repositories

import "errors"

// Error taxonomy for the entry store. NotFound and Forbidden are distinct on
// purpose: handlers may collapse them to one response to avoid leaking which
// entry IDs exist, but logs and audits keep them apart.
var (
	ErrNotFound  = errors.New("entry not found")
	ErrForbidden = errors.New("entry owned by another user")
	ErrConflict  = errors.New("concurrent write conflict")
	ErrBadInput  = errors.New("malformed field data")
)
