// Package client is the HTTP client for the Brew Haven account API.
//
// Transport failures are reported as ErrUnavailable. Known API rejections map
// to the sentinel errors in errors.go; anything else is an *APIError wrapped
// with the matching sentinel where one applies.
package client
