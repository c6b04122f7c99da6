// Package token inspects bearer tokens held by the client.
//
// The client never verifies signatures; that is the server's job. It only
// looks at the registered claims of a JWT to avoid a profile round trip
// when the token has visibly expired. Opaque tokens are treated as having
// unknown expiry.
//
// Fingerprint gives a short stable identifier for a token so it can be
// shown or logged without revealing it.
package token
