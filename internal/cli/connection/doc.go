// Package connection is the single point of egress from spot-cli to the
// restaurant API.
//
//   - http.go: HTTPClient, bearer injection and error normalization
//   - envelope.go: typed helpers that unwrap the {data: T} envelope
//   - errors.go: APIError, the one error shape callers see
//   - token.go: TokenStore, the in-process bearer token cell
//   - manager.go: named API endpoint profiles
//
// Every failure leaving this package is one of three things: an *APIError
// with Kind KindServer (non-2xx), an *APIError with Kind KindUnreachable
// (no response), or the local error that stopped the request from being
// sent, returned unchanged.
package connection
