package session

import (
	"time"

	"github.com/perrymcmanis144/tabstray/internal/shared/types"
)

// Session is a saved tray workspace.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Workspace   Workspace `json:"workspace"`
}

// Workspace captures the restorable part of a snapshot: the owned
// collections and the active page. Selection state and the synced
// projection are deliberately not part of a session; selection is
// transient UI state and synced tabs belong to the remote devices.
type Workspace struct {
	Normal  []types.Tab `json:"normal"`
	Private []types.Tab `json:"private"`
	Page    types.Page  `json:"page"`
}

// Metadata summarizes a session for listings.
type Metadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	TabCount    int       `json:"tab_count"`
}

// ToMetadata extracts listing metadata from a session.
func (s *Session) ToMetadata() Metadata {
	return Metadata{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		TabCount:    len(s.Workspace.Normal) + len(s.Workspace.Private),
	}
}

// Stats contains session manager statistics.
type Stats struct {
	TotalSessions int        `json:"total_sessions"`
	LastSaved     *time.Time `json:"last_saved,omitempty"`
	LastRestored  *time.Time `json:"last_restored,omitempty"`
}
