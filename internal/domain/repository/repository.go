package repository

import "errors"

// ErrNotFound is returned by every repository when the target row does not
// exist. Application services translate it into their own taxonomy.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert loses a race on a uniqueness
// constraint (user email, subject name).
var ErrDuplicate = errors.New("duplicate")

// DefaultListLimit caps list scans when the caller supplies no limit.
const DefaultListLimit = 50

// MaxListLimit is the hard ceiling for any list scan.
const MaxListLimit = 100

// ClampLimit normalizes a caller-supplied limit into [1, MaxListLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
