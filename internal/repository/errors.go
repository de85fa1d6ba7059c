package repository

import "errors"

// Constraint-violation errors surfaced by repositories so callers can
// translate them to client-facing failures instead of generic 500s.
var (
	// ErrDuplicateEmail is returned when an insert hits the per-table
	// unique index on email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicatePurchase is returned when an insert hits the unique
	// (user_id, course_id) index. This is the correctness guarantee of
	// last resort for purchase idempotency — the service-level pre-check
	// only exists for a friendlier error path.
	ErrDuplicatePurchase = errors.New("purchase already exists")

	// ErrHasDependents is returned when a delete is blocked by a
	// RESTRICT foreign key (e.g. a course that has purchases).
	ErrHasDependents = errors.New("row is still referenced")
)
