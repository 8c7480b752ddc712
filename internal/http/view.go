package http

import (
	"time"

	"github.com/perrymcmanis144/tabstray/internal/shared/types"
)

// OpenTabRequest is the body for POST /tabs.
type OpenTabRequest struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Private bool   `json:"private"`
}

// SelectPageRequest is the body for POST /tray/page.
type SelectPageRequest struct {
	Page types.Page `json:"page"`
}

// InactiveExpandedRequest is the body for POST /tray/inactive.
type InactiveExpandedRequest struct {
	Expanded bool `json:"expanded"`
}

// SaveSessionRequest is the body for POST /sessions/save.
type SaveSessionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TrayView is the render-ready projection of a snapshot: normal tabs are
// split into the active list and the collapsible inactive sub-section.
type TrayView struct {
	Page            types.Page           `json:"page"`
	PageTransitions uint64               `json:"page_transitions"`
	Selection       types.Selection      `json:"selection"`
	Normal          []types.Tab          `json:"normal"`
	Inactive        InactiveSection      `json:"inactive"`
	Private         []types.Tab          `json:"private"`
	Synced          []types.SyncedDevice `json:"synced"`
	Stats           types.Stats          `json:"stats"`
}

// InactiveSection is the collapsible group of unused normal tabs.
type InactiveSection struct {
	Expanded bool        `json:"expanded"`
	Tabs     []types.Tab `json:"tabs"`
}

// trayView derives the view from a snapshot. Inactive membership depends
// on the current time, so it is computed here per request rather than
// stored in the snapshot.
func trayView(state *types.State, inactiveAfter time.Duration) TrayView {
	active, inactive := state.SplitInactive(time.Now().Add(-inactiveAfter))
	return TrayView{
		Page:            state.Page,
		PageTransitions: state.PageTransitions,
		Selection:       state.Selection,
		Normal:          active,
		Inactive: InactiveSection{
			Expanded: state.InactiveExpanded,
			Tabs:     inactive,
		},
		Private: state.Private,
		Synced:  state.Synced,
		Stats:   state.Stats(),
	}
}
