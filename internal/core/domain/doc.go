// Package domain defines the records exchanged with the restaurant API.
//
// The types here are plain value objects without IO dependencies:
//
//   - User: the authenticated staff member returned by /auth
//   - MenuItem: a dish or drink shown on the public menu
//   - Reservation: a table booking and its status
//   - ContactMessage: a message submitted through the contact form
//   - Errors: local validation failures
//
// The remote server is the source of truth for validation. The Validate
// helpers only mirror the constraints the public forms enforce before a
// request is sent.
package domain
