// Package tabs implements the tabs tray store: a single-writer,
// reducer-driven state machine over the normal, private, and synced tab
// collections.
//
// Dispatch semantics:
//   - Actions apply in dispatch order (FIFO), one at a time.
//   - Each applied action commits a new immutable State snapshot; a
//     snapshot is never mutated after it is published.
//   - Malformed actions (unknown ids, invalid pages) are silent no-ops.
//
// Observation:
//   - Snapshot returns the committed state and never blocks Dispatch.
//   - Subscribe registers a callback fired once per commit, in commit
//     order, with unsubscribe via the returned cancel function.
package tabs
