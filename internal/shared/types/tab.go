package types

import "time"

// Collection identifies which collection owns a tab.
type Collection string

const (
	CollectionNormal  Collection = "normal"
	CollectionPrivate Collection = "private"
)

// Page identifies which tray page is active.
type Page string

const (
	PageNormalTabs  Page = "normal"
	PagePrivateTabs Page = "private"
	PageSyncedTabs  Page = "synced"
)

// Valid reports whether p is a known tray page.
func (p Page) Valid() bool {
	switch p {
	case PageNormalTabs, PagePrivateTabs, PageSyncedTabs:
		return true
	}
	return false
}

// MediaState represents tab media playback.
type MediaState string

const (
	MediaNone    MediaState = "none"
	MediaPlaying MediaState = "playing"
	MediaPaused  MediaState = "paused"
)

// Tab represents a single browsing session owned by this device.
type Tab struct {
	ID           string     `json:"id"`
	Collection   Collection `json:"collection"`
	URL          string     `json:"url"`
	Title        string     `json:"title"`
	Media        MediaState `json:"media,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccessed time.Time  `json:"last_accessed"`
}

// SyncedTab is a read-only tab reference from another signed-in device.
// It is displayed but never owned or mutated locally.
type SyncedTab struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// SyncedDevice groups synced tabs by the remote device they came from.
type SyncedDevice struct {
	DeviceID   string      `json:"device_id"`
	DeviceName string      `json:"device_name"`
	Tabs       []SyncedTab `json:"tabs"`
}
