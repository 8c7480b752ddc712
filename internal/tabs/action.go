package tabs

import "github.com/perrymcmanis144/tabstray/internal/shared/types"

// Action is a request for a single state transition. Actions are applied
// by the store in dispatch order, one at a time, through a pure reducer.
type Action interface {
	// Kind returns a stable name used for logging and metrics labels.
	Kind() string
}

// OpenTab adds a tab to its owning collection. A tab whose id already
// exists in either collection is ignored.
type OpenTab struct {
	Tab types.Tab
}

// CloseTab removes a tab from whichever collection owns it. Unknown ids
// are ignored.
type CloseTab struct {
	ID string
}

// SelectPage switches the active tray page. Collections are never touched
// by a page switch; select mode is exited because a selection is only
// valid on the page that contains the selected tabs.
type SelectPage struct {
	Page types.Page
}

// EnterSelectMode starts multi-select with an empty selection. Ignored on
// the synced page, which has no selectable tabs.
type EnterSelectMode struct{}

// ExitSelectMode clears the selection and returns to normal mode.
type ExitSelectMode struct{}

// AddSelectTab selects a tab. The tab must be present in the active
// page's collection; anything else is ignored. Selecting in normal mode
// enters select mode implicitly.
type AddSelectTab struct {
	ID string
}

// RemoveSelectTab deselects a tab. Deselecting the last selected tab
// returns the tray to normal mode. Ids that are not selected are ignored.
type RemoveSelectTab struct {
	ID string
}

// ReplaceSyncedTabs swaps in a fresh read-only projection of remote
// device tabs. The previous projection is discarded wholesale.
type ReplaceSyncedTabs struct {
	Devices []types.SyncedDevice
}

// SetInactiveExpanded opens or collapses the inactive tab sub-section.
type SetInactiveExpanded struct {
	Expanded bool
}

// RestoreWorkspace replaces both owned collections and the active page in
// one transition, used when restoring a saved session. Tabs absent from
// the restored workspace are destroyed. Selection is reset; the synced
// projection is kept since it does not belong to the session.
type RestoreWorkspace struct {
	Normal  []types.Tab
	Private []types.Tab
	Page    types.Page
}

func (OpenTab) Kind() string             { return "open_tab" }
func (CloseTab) Kind() string            { return "close_tab" }
func (SelectPage) Kind() string          { return "select_page" }
func (EnterSelectMode) Kind() string     { return "enter_select_mode" }
func (ExitSelectMode) Kind() string      { return "exit_select_mode" }
func (AddSelectTab) Kind() string        { return "add_select_tab" }
func (RemoveSelectTab) Kind() string     { return "remove_select_tab" }
func (ReplaceSyncedTabs) Kind() string   { return "replace_synced_tabs" }
func (SetInactiveExpanded) Kind() string { return "set_inactive_expanded" }
func (RestoreWorkspace) Kind() string    { return "restore_workspace" }
