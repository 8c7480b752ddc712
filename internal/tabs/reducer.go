package tabs

import "github.com/perrymcmanis144/tabstray/internal/shared/types"

// reduce applies one action to a snapshot and returns the resulting
// snapshot. It never mutates its input; every change path builds fresh
// slices. Returning the input pointer unchanged marks the action as a
// no-op so the store can skip the commit entirely.
func reduce(s *types.State, action Action) *types.State {
	switch a := action.(type) {
	case OpenTab:
		return reduceOpenTab(s, a)
	case CloseTab:
		return reduceCloseTab(s, a)
	case SelectPage:
		return reduceSelectPage(s, a)
	case EnterSelectMode:
		return reduceEnterSelectMode(s)
	case ExitSelectMode:
		return reduceExitSelectMode(s)
	case AddSelectTab:
		return reduceAddSelectTab(s, a)
	case RemoveSelectTab:
		return reduceRemoveSelectTab(s, a)
	case ReplaceSyncedTabs:
		return reduceReplaceSyncedTabs(s, a)
	case SetInactiveExpanded:
		return reduceSetInactiveExpanded(s, a)
	case RestoreWorkspace:
		return reduceRestoreWorkspace(s, a)
	}
	return s
}

func reduceOpenTab(s *types.State, a OpenTab) *types.State {
	if a.Tab.ID == "" {
		return s
	}
	if _, exists := s.FindTab(a.Tab.ID); exists {
		return s
	}

	tab := a.Tab
	if tab.Collection != types.CollectionPrivate {
		tab.Collection = types.CollectionNormal
	}

	next := *s
	if tab.Collection == types.CollectionPrivate {
		next.Private = appendTab(s.Private, tab)
	} else {
		next.Normal = appendTab(s.Normal, tab)
	}
	return &next
}

func reduceCloseTab(s *types.State, a CloseTab) *types.State {
	tab, ok := s.FindTab(a.ID)
	if !ok {
		return s
	}

	next := *s
	if tab.Collection == types.CollectionPrivate {
		next.Private = withoutTab(s.Private, a.ID)
	} else {
		next.Normal = withoutTab(s.Normal, a.ID)
	}
	next.Selection = deselect(s.Selection, a.ID)
	return &next
}

func reduceSelectPage(s *types.State, a SelectPage) *types.State {
	if !a.Page.Valid() || a.Page == s.Page {
		return s
	}

	next := *s
	next.Page = a.Page
	next.PageTransitions = s.PageTransitions + 1
	next.Selection = types.Selection{Mode: types.ModeNormal}
	return &next
}

func reduceEnterSelectMode(s *types.State) *types.State {
	if s.Selection.Mode == types.ModeSelect || s.Page == types.PageSyncedTabs {
		return s
	}

	next := *s
	next.Selection = types.Selection{Mode: types.ModeSelect}
	return &next
}

func reduceExitSelectMode(s *types.State) *types.State {
	if s.Selection.Mode == types.ModeNormal {
		return s
	}

	next := *s
	next.Selection = types.Selection{Mode: types.ModeNormal}
	return &next
}

func reduceAddSelectTab(s *types.State, a AddSelectTab) *types.State {
	if s.Selection.Contains(a.ID) {
		return s
	}
	if !onActivePage(s, a.ID) {
		return s
	}

	ids := make([]string, len(s.Selection.IDs), len(s.Selection.IDs)+1)
	copy(ids, s.Selection.IDs)
	ids = append(ids, a.ID)

	next := *s
	next.Selection = types.Selection{Mode: types.ModeSelect, IDs: ids}
	return &next
}

func reduceRemoveSelectTab(s *types.State, a RemoveSelectTab) *types.State {
	if !s.Selection.Contains(a.ID) {
		return s
	}

	next := *s
	next.Selection = deselect(s.Selection, a.ID)
	return &next
}

func reduceReplaceSyncedTabs(s *types.State, a ReplaceSyncedTabs) *types.State {
	next := *s
	next.Synced = cloneDevices(a.Devices)
	return &next
}

func reduceSetInactiveExpanded(s *types.State, a SetInactiveExpanded) *types.State {
	if s.InactiveExpanded == a.Expanded {
		return s
	}

	next := *s
	next.InactiveExpanded = a.Expanded
	return &next
}

func reduceRestoreWorkspace(s *types.State, a RestoreWorkspace) *types.State {
	next := *s
	next.Normal = cloneTabs(a.Normal, types.CollectionNormal)
	next.Private = cloneTabs(a.Private, types.CollectionPrivate)
	next.Selection = types.Selection{Mode: types.ModeNormal}
	if a.Page.Valid() && a.Page != s.Page {
		next.Page = a.Page
		next.PageTransitions = s.PageTransitions + 1
	}
	return &next
}

// onActivePage reports whether the tab id lives in the collection shown
// by the active page. The synced page owns no tabs, so nothing is ever
// selectable there.
func onActivePage(s *types.State, id string) bool {
	var tabs []types.Tab
	switch s.Page {
	case types.PageNormalTabs:
		tabs = s.Normal
	case types.PagePrivateTabs:
		tabs = s.Private
	default:
		return false
	}
	for _, t := range tabs {
		if t.ID == id {
			return true
		}
	}
	return false
}

// deselect removes one id from a selection, dropping back to normal mode
// when the selection empties.
func deselect(sel types.Selection, id string) types.Selection {
	if !sel.Contains(id) {
		return sel
	}
	ids := make([]string, 0, len(sel.IDs)-1)
	for _, existing := range sel.IDs {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	if len(ids) == 0 {
		return types.Selection{Mode: types.ModeNormal}
	}
	return types.Selection{Mode: sel.Mode, IDs: ids}
}

func appendTab(tabs []types.Tab, tab types.Tab) []types.Tab {
	out := make([]types.Tab, len(tabs), len(tabs)+1)
	copy(out, tabs)
	return append(out, tab)
}

func withoutTab(tabs []types.Tab, id string) []types.Tab {
	out := make([]types.Tab, 0, len(tabs))
	for _, t := range tabs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func cloneTabs(tabs []types.Tab, owner types.Collection) []types.Tab {
	out := make([]types.Tab, 0, len(tabs))
	for _, t := range tabs {
		t.Collection = owner
		out = append(out, t)
	}
	return out
}

func cloneDevices(devices []types.SyncedDevice) []types.SyncedDevice {
	out := make([]types.SyncedDevice, 0, len(devices))
	for _, d := range devices {
		tabs := make([]types.SyncedTab, len(d.Tabs))
		copy(tabs, d.Tabs)
		d.Tabs = tabs
		out = append(out, d)
	}
	return out
}
