// Package types provides shared data structures for the tabs tray service.
//
// This package defines the domain types used across all components,
// ensuring consistent data structures between the store, the HTTP/WS
// surface, and session persistence.
//
// Core Types:
//   - Tab: Locally owned browsing session
//   - SyncedTab, SyncedDevice: Read-only projection from remote devices
//   - State: Immutable tray snapshot committed by the store
//   - Selection: Multi-select mode and selected tab ids
//
// State Management:
//   - Collection: Owning collection enum (normal, private)
//   - Page: Tray page enum (normal, private, synced)
//   - Mode: Interaction mode enum (normal, select)
//   - Stats: Snapshot statistics
//
// Invariants encoded here:
//   - A tab belongs to exactly one of {normal, private}.
//   - Inactive is a derived view over normal tabs (SplitInactive),
//     never a separate ownership.
//   - Synced devices are replaced wholesale, never mutated in place.
package types
