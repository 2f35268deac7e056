package auth

import "net/http"

// APIKeyHeader is the request header carrying the board credential.
const APIKeyHeader = "api-key"

// KeyFromRequest extracts the presented api key from request metadata.
// An absent header yields the empty string, which AuthorityFor treats as
// no credential.
func KeyFromRequest(r *http.Request) string {
	return r.Header.Get(APIKeyHeader)
}
