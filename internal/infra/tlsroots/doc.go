// Package tlsroots builds the TLS settings for talking to the API over
// https.
//
//   - roots.go: system roots plus an optional private CA bundle
//   - client.go: the tls.Config used by the HTTP transport
//   - watcher.go: client certificate reload via fsnotify
//
// Plain-http endpoints need none of this; the transport only installs a
// tls.Config when a CA file or client certificate is configured.
package tlsroots
