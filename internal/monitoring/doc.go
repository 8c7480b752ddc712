// Package monitoring provides Prometheus metrics for the tabs tray
// service: store dispatch counters, tab gauges per collection, sync and
// session counters, WebSocket connection tracking, and HTTP request
// metrics with a Gin middleware.
//
// Each Metrics value registers against its own registry, exposed through
// Handler, so tests can construct collectors without collisions.
package monitoring
