// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrUnauthenticated indicates that the request has no valid identity.
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	// ErrForbidden indicates that the identity may not perform the request.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)
