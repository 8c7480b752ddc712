package types

import "time"

// Mode represents the tray interaction mode.
type Mode string

const (
	// ModeNormal is the default browsing mode with no selection.
	ModeNormal Mode = "normal"
	// ModeSelect is multi-select mode for batch tab operations.
	ModeSelect Mode = "select"
)

// Selection holds the multi-select state. In ModeNormal the id list is
// always empty.
type Selection struct {
	Mode Mode     `json:"mode"`
	IDs  []string `json:"ids,omitempty"`
}

// Contains reports whether a tab id is currently selected.
func (s Selection) Contains(id string) bool {
	for _, sel := range s.IDs {
		if sel == id {
			return true
		}
	}
	return false
}

// State is one immutable snapshot of the tabs tray. Consumers must treat
// it and everything it references as read-only; the store hands out a new
// snapshot per committed action and never mutates a published one.
type State struct {
	Normal  []Tab          `json:"normal"`
	Private []Tab          `json:"private"`
	Synced  []SyncedDevice `json:"synced"`

	Page      Page      `json:"page"`
	Selection Selection `json:"selection"`

	// InactiveExpanded tracks whether the inactive sub-section is open.
	InactiveExpanded bool `json:"inactive_expanded"`

	// PageTransitions increments on every page switch. The render layer
	// uses it as an animation request without polling for page changes.
	PageTransitions uint64 `json:"page_transitions"`
}

// Collection returns the tabs owned by the given collection.
func (s *State) Collection(c Collection) []Tab {
	if c == CollectionPrivate {
		return s.Private
	}
	return s.Normal
}

// FindTab locates a tab by id across both owned collections.
func (s *State) FindTab(id string) (Tab, bool) {
	for _, t := range s.Normal {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range s.Private {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// SplitInactive partitions normal tabs into active and inactive. A normal
// tab is inactive when it has not been accessed since the cutoff. Private
// tabs never become inactive.
func (s *State) SplitInactive(cutoff time.Time) (active, inactive []Tab) {
	for _, t := range s.Normal {
		if t.LastAccessed.Before(cutoff) {
			inactive = append(inactive, t)
		} else {
			active = append(active, t)
		}
	}
	return active, inactive
}

// Stats summarizes a snapshot for health checks and logging.
type Stats struct {
	NormalTabs  int  `json:"normal_tabs"`
	PrivateTabs int  `json:"private_tabs"`
	SyncedTabs  int  `json:"synced_tabs"`
	Selected    int  `json:"selected"`
	Page        Page `json:"page"`
	Mode        Mode `json:"mode"`
}

// Stats computes summary statistics for the snapshot.
func (s *State) Stats() Stats {
	synced := 0
	for _, d := range s.Synced {
		synced += len(d.Tabs)
	}
	return Stats{
		NormalTabs:  len(s.Normal),
		PrivateTabs: len(s.Private),
		SyncedTabs:  synced,
		Selected:    len(s.Selection.IDs),
		Page:        s.Page,
		Mode:        s.Selection.Mode,
	}
}
