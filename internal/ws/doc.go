// Package ws streams tray snapshots to connected clients over WebSocket.
//
// On connect a client receives the current snapshot, then one "state"
// message per committed store change, in commit order. Each connection
// owns a bounded send queue; when a client falls behind, intermediate
// snapshots are dropped rather than blocking dispatch. Every message
// carries the complete state, so the next one resynchronizes the client.
//
// Message Types (Client -> Server):
//   - open_tab, close_tab: tab lifecycle
//   - select_page: switch the active tray page
//   - enter_select_mode, exit_select_mode, add_select_tab,
//     remove_select_tab: multi-select operations
//   - set_inactive_expanded: toggle the inactive sub-section
//   - ping: keep-alive
//
// Message Types (Server -> Client):
//   - system: connection established
//   - state: full tray snapshot
//   - pong: keep-alive reply
//   - error: malformed or unknown message
package ws
