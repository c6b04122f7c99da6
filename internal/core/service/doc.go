// Package service wraps the restaurant API routes in typed calls.
//
// Every call goes through a connection.Doer, unwraps the {data: T}
// envelope and returns T. Services do not validate input; the server is
// the source of truth, and its rejections arrive as *connection.APIError
// carrying the server's message. Mutations return the server's updated
// record so callers can replace their local copy.
package service
