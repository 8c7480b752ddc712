// Package server wires the tabs tray service together: the store, the
// session manager, the synced-tab refresher, and the HTTP/WebSocket
// surface with its middleware chain.
package server
