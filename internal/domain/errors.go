package domain

import "errors"

// Sentinel errors shared across services and controllers.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means no valid credential (bearer token or admin
	// secret) accompanied the request.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but not allowed to
	// perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrSelfRoleChange means a superadmin attempted to change their own role.
	ErrSelfRoleChange = errors.New("cannot change your own role")

	// ErrDuplicateEmail means a user row with that email already exists.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrSlugTaken means an event insert hit the slug unique constraint.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrSlugExhausted means slug generation collided on every attempt.
	// With an 8-char [a-z0-9] alphabet this is effectively unreachable.
	ErrSlugExhausted = errors.New("failed to generate unique slug after multiple attempts")
)
