// Package http provides HTTP handlers for the tabs tray REST API.
//
// This package implements all HTTP endpoints using the Gin framework,
// including health checks, tab management, tray paging and selection,
// and session management.
//
// Endpoints:
//   - Health: / and /health
//   - Tabs: /tabs, /tabs/:id
//   - Tray: /tray/page, /tray/select, /tray/select/:id, /tray/inactive
//   - Sessions: /sessions/save, /sessions, /sessions/:id,
//     /sessions/:id/restore
//
// All state changes go through the store's Dispatch; handlers never
// mutate tray state directly, so responses always reflect a committed
// snapshot.
package http
