// Package credential persists the bearer token between spot-cli runs.
//
// A Store holds at most one value under Key. Absence of the value means the
// user is signed out. Backends:
//
//   - file: a single 0600 file, the default
//   - badger: an embedded Badger database directory
//   - memory: process-local, used by tests and --no-persist runs
//
// Any backend can be wrapped with Seal to encrypt the token at rest.
package credential
