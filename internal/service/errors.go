package service

import "errors"

// Domain errors shared across services. Handlers map these onto the
// response error codes; anything else falls through as an internal error.
var (
	ErrDuplicateAccount   = errors.New("account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyPurchased   = errors.New("course already purchased")
	ErrCourseHasPurchases = errors.New("course has purchase records")
)
