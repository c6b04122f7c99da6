// Package metric provides Prometheus metrics for spot-cli.
//
// The CLI is short-lived, so there is no /metrics endpoint. Metrics are
// collected in a private registry and, when metrics.textfile is set,
// written in text exposition format on exit for a node_exporter
// textfile collector to pick up.
//
// Metrics include:
//
//   - spot_client_requests_total{method,outcome}
//   - spot_client_request_duration_seconds{method}
//   - spot_session_transitions_total{reason}
package metric
