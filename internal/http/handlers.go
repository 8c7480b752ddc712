package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/perrymcmanis144/tabstray/internal/session"
	"github.com/perrymcmanis144/tabstray/internal/shared/id"
	"github.com/perrymcmanis144/tabstray/internal/shared/types"
	"github.com/perrymcmanis144/tabstray/internal/tabs"
)

// SyncRequester triggers on-demand synced-tab refreshes.
type SyncRequester interface {
	Request()
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	store         *tabs.Store
	sessions      *session.Manager
	sync          SyncRequester
	inactiveAfter time.Duration
}

// NewHandlers creates a new handler set. sync may be nil when synced-tab
// refresh is disabled.
func NewHandlers(store *tabs.Store, sessions *session.Manager, sync SyncRequester, inactiveAfter time.Duration) *Handlers {
	return &Handlers{
		store:         store,
		sessions:      sessions,
		sync:          sync,
		inactiveAfter: inactiveAfter,
	}
}

// Root handles the basic status check.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Tabs Tray Service",
		"version": "0.3.0",
	})
}

// Health handles the detailed health check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"tray":     h.store.Stats(),
		"sessions": h.sessions.Stats(),
		"sync":     gin.H{"enabled": h.sync != nil},
	})
}

// GetTray returns the current tray view: all three pages, the selection
// banner state, and the inactive sub-section derived from normal tabs.
func (h *Handlers) GetTray(c *gin.Context) {
	state := h.store.Snapshot()
	c.JSON(http.StatusOK, trayView(state, h.inactiveAfter))
}

// OpenTab opens a new tab in the normal or private collection.
func (h *Handlers) OpenTab(c *gin.Context) {
	var req OpenTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	collection := types.CollectionNormal
	if req.Private {
		collection = types.CollectionPrivate
	}

	now := time.Now()
	tab := types.Tab{
		ID:           string(id.NewTabID()),
		Collection:   collection,
		URL:          req.URL,
		Title:        req.Title,
		Media:        types.MediaNone,
		CreatedAt:    now,
		LastAccessed: now,
	}

	state := h.store.Dispatch(tabs.OpenTab{Tab: tab})
	c.JSON(http.StatusCreated, gin.H{
		"tab":   tab,
		"stats": state.Stats(),
	})
}

// CloseTab closes a tab in whichever collection owns it.
func (h *Handlers) CloseTab(c *gin.Context) {
	tabID := c.Param("id")

	_, existed := h.store.Snapshot().FindTab(tabID)
	state := h.store.Dispatch(tabs.CloseTab{ID: tabID})

	c.JSON(http.StatusOK, gin.H{
		"success": existed,
		"tab_id":  tabID,
		"stats":   state.Stats(),
	})
}

// SelectPage switches the active tray page.
func (h *Handlers) SelectPage(c *gin.Context) {
	var req SelectPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Page.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown page"})
		return
	}

	state := h.store.Dispatch(tabs.SelectPage{Page: req.Page})

	// Synced tabs refresh lazily: opening the page asks for fresh data
	// but renders the current projection immediately.
	if req.Page == types.PageSyncedTabs && h.sync != nil {
		h.sync.Request()
	}

	c.JSON(http.StatusOK, gin.H{
		"page":             state.Page,
		"page_transitions": state.PageTransitions,
	})
}

// EnterSelectMode starts multi-select with an empty selection.
func (h *Handlers) EnterSelectMode(c *gin.Context) {
	state := h.store.Dispatch(tabs.EnterSelectMode{})
	c.JSON(http.StatusOK, gin.H{"selection": state.Selection})
}

// ExitSelectMode clears the selection.
func (h *Handlers) ExitSelectMode(c *gin.Context) {
	state := h.store.Dispatch(tabs.ExitSelectMode{})
	c.JSON(http.StatusOK, gin.H{"selection": state.Selection})
}

// AddSelectTab selects a tab on the active page.
func (h *Handlers) AddSelectTab(c *gin.Context) {
	tabID := c.Param("id")
	state := h.store.Dispatch(tabs.AddSelectTab{ID: tabID})
	c.JSON(http.StatusOK, gin.H{
		"selected":  state.Selection.Contains(tabID),
		"selection": state.Selection,
	})
}

// RemoveSelectTab deselects a tab.
func (h *Handlers) RemoveSelectTab(c *gin.Context) {
	tabID := c.Param("id")
	state := h.store.Dispatch(tabs.RemoveSelectTab{ID: tabID})
	c.JSON(http.StatusOK, gin.H{"selection": state.Selection})
}

// SetInactiveExpanded opens or collapses the inactive sub-section.
func (h *Handlers) SetInactiveExpanded(c *gin.Context) {
	var req InactiveExpandedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := h.store.Dispatch(tabs.SetInactiveExpanded{Expanded: req.Expanded})
	c.JSON(http.StatusOK, gin.H{"inactive_expanded": state.InactiveExpanded})
}

// SaveSession captures the current workspace under a name.
func (h *Handlers) SaveSession(c *gin.Context) {
	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		req.Name = "default"
	}

	saved, err := h.sessions.Save(req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": saved.ToMetadata()})
}

// ListSessions lists all saved sessions.
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.sessions.List()})
}

// GetSession returns one full session.
func (h *Handlers) GetSession(c *gin.Context) {
	loaded, err := h.sessions.Load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": loaded})
}

// RestoreSession applies a saved session to the tray.
func (h *Handlers) RestoreSession(c *gin.Context) {
	restored, err := h.sessions.Restore(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": restored.ToMetadata(),
		"stats":   h.store.Stats(),
	})
}

// DeleteSession removes a saved session.
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
