package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates the email/password pair was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPrincipalNotFound indicates authentication passed but no account record resolved.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrAccessDenied indicates the principal lacks the elevated role.
	ErrAccessDenied = errors.New("access denied")
)
