// Package permission decides whether a principal may perform a request.
//
// Rules are pure functions of the request method and the principal. The same
// rules back both the catalog API and the account pages, see middleware.Authorize.
package permission

import "net/http"

// Principal is the identity acting on a request.
type Principal struct {
	Username      string
	Authenticated bool
	Superuser     bool
}

// Anonymous is the principal of a request without credentials.
var Anonymous = Principal{}

// Rule reports whether p may perform a request with the given method.
type Rule func(method string, p Principal) bool

// ReadOnlyOrSuperuser lets any authenticated principal read and only
// authenticated superusers write. Every other method is denied.
func ReadOnlyOrSuperuser(method string, p Principal) bool {
	switch method {
	case http.MethodGet, http.MethodOptions, http.MethodHead:
		return p.Authenticated
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return p.Authenticated && p.Superuser
	}

	return false
}

// Authenticated lets any authenticated principal through regardless of method.
func Authenticated(_ string, p Principal) bool {
	return p.Authenticated
}
