package services

import "errors"

// Errors shared by several services. Handlers map them onto HTTP statuses.
var (
	ErrForbidden   = errors.New("access to this resource is forbidden")
	ErrJobNotFound = errors.New("job not found")
)
