package tabs

import (
	"testing"
	"time"

	"github.com/perrymcmanis144/tabstray/internal/shared/types"
)

func testTab(id string, collection types.Collection) types.Tab {
	now := time.Now()
	return types.Tab{
		ID:           id,
		Collection:   collection,
		URL:          "https://example.com/" + id,
		Title:        id,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

func newTestStore(t *testing.T, tabs ...types.Tab) *Store {
	t.Helper()
	s := NewStore()
	for _, tab := range tabs {
		s.Dispatch(OpenTab{Tab: tab})
	}
	return s
}

func TestOpenTab(t *testing.T) {
	s := NewStore()

	state := s.Dispatch(OpenTab{Tab: testTab("a", types.CollectionNormal)})
	if len(state.Normal) != 1 || state.Normal[0].ID != "a" {
		t.Fatalf("Expected normal == [a], got %+v", state.Normal)
	}
	if len(state.Private) != 0 {
		t.Error("Private collection should be unaffected")
	}

	// Private tabs land in the private collection and leave normal alone.
	state = s.Dispatch(OpenTab{Tab: testTab("c", types.CollectionPrivate)})
	if len(state.Private) != 1 || state.Private[0].ID != "c" {
		t.Fatalf("Expected private == [c], got %+v", state.Private)
	}
	if len(state.Normal) != 1 {
		t.Error("Normal collection should be unaffected by a private open")
	}
}

func TestOpenTabNeverDuplicatesAcrossCollections(t *testing.T) {
	s := newTestStore(t, testTab("a", types.CollectionNormal))

	// Reopening the same id, even against the other collection, is a no-op.
	state := s.Dispatch(OpenTab{Tab: testTab("a", types.CollectionPrivate)})

	if len(state.Normal) != 1 || len(state.Private) != 0 {
		t.Errorf("Tab must belong to exactly one collection: normal=%d private=%d",
			len(state.Normal), len(state.Private))
	}
}

func TestOpenTabPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t,
		testTab("a", types.CollectionNormal),
		testTab("b", types.CollectionNormal),
		testTab("c", types.CollectionNormal),
	)

	state := s.Snapshot()
	for i, want := range []string{"a", "b", "c"} {
		if state.Normal[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, state.Normal[i].ID)
		}
	}
}

func TestCloseTab(t *testing.T) {
	s := newTestStore(t,
		testTab("a", types.CollectionNormal),
		testTab("b", types.CollectionNormal),
		testTab("p", types.CollectionPrivate),
	)

	state := s.Dispatch(CloseTab{ID: "a"})
	if len(state.Normal) != 1 || state.Normal[0].ID != "b" {
		t.Errorf("Expected normal == [b], got %+v", state.Normal)
	}
	if len(state.Private) != 1 {
		t.Error("Closing a normal tab must not touch the private collection")
	}

	// Unknown ids are silent no-ops.
	before := s.Snapshot()
	after := s.Dispatch(CloseTab{ID: "missing"})
	if after != before {
		t.Error("Closing an unknown tab should not commit a new snapshot")
	}
}

func TestCloseAllTabsLeavesOtherCollectionAndPage(t *testing.T) {
	s := newTestStore(t,
		testTab("a", types.CollectionNormal),
		testTab("p", types.CollectionPrivate),
	)
	s.Dispatch(SelectPage{Page: types.PagePrivateTabs})

	state := s.Dispatch(CloseTab{ID: "p"})
	if len(state.Private) != 0 {
		t.Fatal("Private collection should be empty")
	}
	if len(state.Normal) != 1 {
		t.Error("Normal collection should be untouched")
	}
	if state.Page != types.PagePrivateTabs {
		t.Error("Active page should be untouched by closing tabs")
	}
}

func TestSelectPage(t *testing.T) {
	s := newTestStore(t, testTab("a", types.CollectionNormal))

	before := s.Snapshot()
	state := s.Dispatch(SelectPage{Page: types.PageSyncedTabs})

	if state.Page != types.PageSyncedTabs {
		t.Errorf("Expected synced page, got %s", state.Page)
	}
	if state.PageTransitions != before.PageTransitions+1 {
		t.Error("Page switch should request a transition animation")
	}
	if len(state.Normal) != len(before.Normal) || len(state.Private) != len(before.Private) {
		t.Error("Switching pages must never change tab counts")
	}

	// Selecting the current page is a no-op, including the animation counter.
	again := s.Dispatch(SelectPage{Page: types.PageSyncedTabs})
	if again != state {
		t.Error("Re-selecting the active page should not commit")
	}

	// Invalid pages are ignored.
	if s.Dispatch(SelectPage{Page: "bookmarks"}) != again {
		t.Error("Unknown page should be a no-op")
	}
}

func TestSelectPageExitsSelectMode(t *testing.T) {
	s := newTestStore(t, testTab("a", types.CollectionNormal))
	s.Dispatch(AddSelectTab{ID: "a"})

	state := s.Dispatch(SelectPage{Page: types.PagePrivateTabs})
	if state.Selection.Mode != types.ModeNormal || len(state.Selection.IDs) != 0 {
		t.Errorf("Leaving the page should clear the selection, got %+v", state.Selection)
	}
}

func TestSelectModeLifecycle(t *testing.T) {
	s := newTestStore(t,
		testTab("a", types.CollectionNormal),
		testTab("b", types.CollectionNormal),
	)

	// Scenario: select both, deselect both, back to normal mode.
	s.Dispatch(AddSelectTab{ID: "a"})
	state := s.Dispatch(AddSelectTab{ID: "b"})
	if state.Selection.Mode != types.ModeSelect || len(state.Selection.IDs) != 2 {
		t.Fatalf("Expected two selected tabs in select mode, got %+v", state.Selection)
	}

	s.Dispatch(RemoveSelectTab{ID: "a"})
	state = s.Dispatch(RemoveSelectTab{ID: "b"})
	if state.Selection.Mode != types.ModeNormal {
		t.Errorf("Deselecting the last tab should exit select mode, got %s", state.Selection.Mode)
	}
}

func TestAddSelectTabImplicitlyEntersSelectMode(t *testing.T) {
	s := newTestStore(t, testTab("a", types.CollectionNormal))

	state := s.Dispatch(AddSelectTab{ID: "a"})
	if state.Selection.Mode != types.ModeSelect {
		t.Errorf("Selecting a tab should enter select mode, got %s", state.Selection.Mode)
	}
}

func TestAddSelectTabValidatesActivePage(t *testing.T) {
	s := newTestStore(t,
		testTab("a", types.CollectionNormal),
		testTab("p", types.CollectionPrivate),
	)

	// "p" lives in private, but the normal page is active.
	before := s.Snapshot()
	if s.Dispatch(AddSelectTab{ID: "p"}) != before {
		t.Error("Selecting a tab outside the active page should be a no-op")
	}

	// Unknown ids too.
	if s.Dispatch(AddSelectTab{ID: "missing"}) != before {
		t.Error("Selecting an unknown tab should be a no-op")
	}

	// Nothing is selectable on the synced page.
	s.Dispatch(SelectPage{Page: types.PageSyncedTabs})
	state := s.Dispatch(AddSelectTab{ID: "a"})
	if state.Selection.Mode != types.ModeNormal {
		t.Error("Nothing should be selectable on the synced page")
	}
}

func TestEnterSelectModeOnSyncedPageIsNoop(t *testing.T) {
	s := newTestStore(t, testTab("a", types.CollectionNormal))
	s.Dispatch(SelectPage{Page: types.PageSyncedTabs})

	state := s.Dispatch(EnterSelectMode{})
	if state.Selection.Mode != types.ModeNormal {
		t.Error("Select mode should not be enterable on the synced page")
	}
}

func TestRemoveSelectTabUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t, testTab("a", types.CollectionNormal))
	s.Dispatch(AddSelectTab{ID: "a"})

	before := s.Snapshot()
	if s.Dispatch(RemoveSelectTab{ID: "b"}) != before {
		t.Error("Deselecting an unselected id should be a no-op")
	}
}

func TestCloseLastSelectedTabExitsSelectMode(t *testing.T) {
	s := newTestStore(t,
		testTab("a", types.CollectionNormal),
		testTab("b", types.CollectionNormal),
	)
	s.Dispatch(AddSelectTab{ID: "a"})

	state := s.Dispatch(CloseTab{ID: "a"})
	if state.Selection.Mode != types.ModeNormal {
		t.Error("Closing the only selected tab should exit select mode")
	}
	if len(state.Normal) != 1 {
		t.Errorf("Expected one remaining tab, got %d", len(state.Normal))
	}
}

func TestCloseSelectedTabKeepsRemainingSelection(t *testing.T) {
	s := newTestStore(t,
		testTab("a", types.CollectionNormal),
		testTab("b", types.CollectionNormal),
	)
	s.Dispatch(AddSelectTab{ID: "a"})
	s.Dispatch(AddSelectTab{ID: "b"})

	state := s.Dispatch(CloseTab{ID: "a"})
	if state.Selection.Mode != types.ModeSelect {
		t.Error("Select mode should survive while tabs remain selected")
	}
	if !state.Selection.Contains("b") || state.Selection.Contains("a") {
		t.Errorf("Expected selection == [b], got %+v", state.Selection.IDs)
	}
}

func TestReplaceSyncedTabs(t *testing.T) {
	s := newTestStore(t, testTab("a", types.CollectionNormal))

	devices := []types.SyncedDevice{
		{
			DeviceID:   "dev-1",
			DeviceName: "Laptop",
			Tabs: []types.SyncedTab{
				{URL: "https://example.com/1", Title: "One"},
				{URL: "https://example.com/2", Title: "Two"},
			},
		},
	}

	state := s.Dispatch(ReplaceSyncedTabs{Devices: devices})
	if len(state.Synced) != 1 || len(state.Synced[0].Tabs) != 2 {
		t.Fatalf("Expected synced projection replaced, got %+v", state.Synced)
	}
	if len(state.Normal) != 1 {
		t.Error("Synced replacement must not touch owned collections")
	}

	// The projection is a copy; mutating the input must not leak in.
	devices[0].Tabs[0].Title = "mutated"
	if state.Synced[0].Tabs[0].Title != "One" {
		t.Error("Snapshot should not alias caller-owned synced tabs")
	}

	// Replacement is wholesale, including with an empty list.
	state = s.Dispatch(ReplaceSyncedTabs{})
	if len(state.Synced) != 0 {
		t.Errorf("Expected empty projection, got %+v", state.Synced)
	}
}

func TestSetInactiveExpanded(t *testing.T) {
	s := NewStore()

	state := s.Dispatch(SetInactiveExpanded{Expanded: true})
	if !state.InactiveExpanded {
		t.Error("Expected inactive section expanded")
	}

	// Setting the current value does not commit.
	if s.Dispatch(SetInactiveExpanded{Expanded: true}) != state {
		t.Error("Redundant toggle should be a no-op")
	}
}

func TestRestoreWorkspace(t *testing.T) {
	s := newTestStore(t,
		testTab("old-a", types.CollectionNormal),
		testTab("old-p", types.CollectionPrivate),
	)
	s.Dispatch(AddSelectTab{ID: "old-a"})

	state := s.Dispatch(RestoreWorkspace{
		Normal:  []types.Tab{testTab("new-a", types.CollectionNormal)},
		Private: nil,
		Page:    types.PagePrivateTabs,
	})

	if len(state.Normal) != 1 || state.Normal[0].ID != "new-a" {
		t.Errorf("Expected normal == [new-a], got %+v", state.Normal)
	}
	if len(state.Private) != 0 {
		t.Error("Tabs absent from the restored workspace should be destroyed")
	}
	if state.Page != types.PagePrivateTabs {
		t.Errorf("Expected restored page, got %s", state.Page)
	}
	if state.Selection.Mode != types.ModeNormal {
		t.Error("Restore should reset the selection")
	}
}

func TestDeterministicReplay(t *testing.T) {
	actions := []Action{
		OpenTab{Tab: testTab("a", types.CollectionNormal)},
		OpenTab{Tab: testTab("b", types.CollectionNormal)},
		OpenTab{Tab: testTab("p", types.CollectionPrivate)},
		AddSelectTab{ID: "a"},
		AddSelectTab{ID: "b"},
		CloseTab{ID: "a"},
		SelectPage{Page: types.PagePrivateTabs},
		SelectPage{Page: types.PageNormalTabs},
		RemoveSelectTab{ID: "b"},
		SetInactiveExpanded{Expanded: true},
	}

	run := func() types.State {
		s := NewStore()
		var last *types.State
		for _, a := range actions {
			last = s.Dispatch(a)
		}
		return *last
	}

	first := run()
	second := run()

	if first.Stats() != second.Stats() {
		t.Errorf("Replays diverged: %+v vs %+v", first.Stats(), second.Stats())
	}
	if first.Page != second.Page || first.PageTransitions != second.PageTransitions {
		t.Error("Replays diverged on page state")
	}
	if first.Selection.Mode != second.Selection.Mode {
		t.Error("Replays diverged on selection mode")
	}
}
