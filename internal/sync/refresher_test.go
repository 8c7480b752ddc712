package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perrymcmanis144/tabstray/internal/shared/types"
	"github.com/perrymcmanis144/tabstray/internal/tabs"
)

type recordingStore struct {
	actions []tabs.Action
}

func (r *recordingStore) Dispatch(action tabs.Action) *types.State {
	r.actions = append(r.actions, action)
	return &types.State{}
}

func TestRefreshNow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"devices": [
				{
					"device_id": "dev-1",
					"device_name": "Laptop",
					"tabs": [
						{"url": "https://example.com/docs", "title": "Docs"},
						{"url": "https://example.com/mail", "title": "Mail"}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	store := &recordingStore{}
	r := NewRefresher(store, server.URL, time.Minute)

	require.NoError(t, r.RefreshNow(context.Background()))

	require.Len(t, store.actions, 1)
	replace, ok := store.actions[0].(tabs.ReplaceSyncedTabs)
	require.True(t, ok, "expected a ReplaceSyncedTabs action")
	require.Len(t, replace.Devices, 1)
	assert.Equal(t, "Laptop", replace.Devices[0].DeviceName)
	assert.Len(t, replace.Devices[0].Tabs, 2)
}

func TestRefreshNowServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := &recordingStore{}
	r := NewRefresher(store, server.URL, time.Minute)

	err := r.RefreshNow(context.Background())
	assert.Error(t, err)
	assert.Empty(t, store.actions, "a failed refresh must keep the previous projection")
}

func TestRequestCoalesces(t *testing.T) {
	r := NewRefresher(&recordingStore{}, "http://localhost:0", time.Minute)

	// Multiple requests while none has been consumed collapse into one.
	r.Request()
	r.Request()
	r.Request()

	assert.Len(t, r.demand, 1)
}

func TestRunStopsOnCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"devices": []}`))
	}))
	defer server.Close()

	r := NewRefresher(&recordingStore{}, server.URL, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
