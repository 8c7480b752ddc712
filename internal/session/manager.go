// Package session persists and restores tray workspaces. Sessions are
// stored as gzip-compressed JSON files under a configurable directory.
package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"

	"github.com/perrymcmanis144/tabstray/internal/monitoring"
	"github.com/perrymcmanis144/tabstray/internal/shared/id"
	"github.com/perrymcmanis144/tabstray/internal/shared/types"
	"github.com/perrymcmanis144/tabstray/internal/tabs"
)

const fileSuffix = ".json.gz"

// TrayStore is the slice of the store the session manager needs.
type TrayStore interface {
	Snapshot() *types.State
	Dispatch(action tabs.Action) *types.State
}

// Manager handles session persistence.
type Manager struct {
	store TrayStore
	dir   string

	sessions     sync.Map // id -> *Session
	mu           sync.Mutex
	lastSaved    *time.Time
	lastRestored *time.Time

	metrics *monitoring.Metrics
}

// NewManager creates a session manager writing under dir. Existing
// session files are indexed lazily on first use.
func NewManager(store TrayStore, dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sessions dir: %w", err)
	}
	m := &Manager{store: store, dir: dir}
	if err := m.loadIndex(); err != nil {
		return nil, err
	}
	return m, nil
}

// WithMetrics adds metrics tracking to the manager.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Save captures the current workspace and writes it to disk.
func (m *Manager) Save(name, description string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.store.Snapshot()
	now := time.Now()
	session := &Session{
		ID:          string(id.NewSessionID()),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		Workspace: Workspace{
			Normal:  state.Normal,
			Private: state.Private,
			Page:    state.Page,
		},
	}

	if err := m.write(session); err != nil {
		return nil, err
	}

	m.sessions.Store(session.ID, session)
	m.lastSaved = &now
	if m.metrics != nil {
		m.metrics.IncSessionsSaved()
	}
	return session, nil
}

// SaveDefault saves a session with a default name.
func (m *Manager) SaveDefault() (*Session, error) {
	return m.Save("default", "Auto-saved session")
}

// Load reads a session, from cache or disk.
func (m *Manager) Load(sessionID string) (*Session, error) {
	if cached, ok := m.sessions.Load(sessionID); ok {
		return cached.(*Session), nil
	}

	session, err := m.read(sessionID)
	if err != nil {
		return nil, err
	}
	m.sessions.Store(sessionID, session)
	return session, nil
}

// Restore applies a saved session to the store. The restored workspace
// replaces both owned collections wholesale: tabs not present in the
// session are destroyed, which matches how a session restore discards
// tabs opened after the save.
func (m *Manager) Restore(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.Load(sessionID)
	if err != nil {
		return nil, err
	}

	m.store.Dispatch(tabs.RestoreWorkspace{
		Normal:  session.Workspace.Normal,
		Private: session.Workspace.Private,
		Page:    session.Workspace.Page,
	})

	now := time.Now()
	m.lastRestored = &now
	if m.metrics != nil {
		m.metrics.IncSessionsRestored()
	}
	return session, nil
}

// List returns metadata for all saved sessions.
func (m *Manager) List() []Metadata {
	out := []Metadata{}
	m.sessions.Range(func(_, value interface{}) bool {
		out = append(out, value.(*Session).ToMetadata())
		return true
	})
	return out
}

// Delete removes a session from disk and cache.
func (m *Manager) Delete(sessionID string) error {
	if err := os.Remove(m.sessionPath(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.sessions.Delete(sessionID)
	return nil
}

// Stats returns session manager statistics.
func (m *Manager) Stats() Stats {
	var total int
	m.sessions.Range(func(_, _ interface{}) bool {
		total++
		return true
	})
	return Stats{
		TotalSessions: total,
		LastSaved:     m.lastSaved,
		LastRestored:  m.lastRestored,
	}
}

// loadIndex reads every existing session file into the cache.
func (m *Manager) loadIndex() error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("failed to scan sessions dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		sessionID := strings.TrimSuffix(name, fileSuffix)
		session, err := m.read(sessionID)
		if err != nil {
			// Skip unreadable files rather than refusing to start.
			continue
		}
		m.sessions.Store(sessionID, session)
	}
	return nil
}

func (m *Manager) write(session *Session) error {
	data, err := sonic.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	f, err := os.Create(m.sessionPath(session.ID))
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush session: %w", err)
	}
	return nil
}

func (m *Manager) read(sessionID string) (*Session, error) {
	f, err := os.Open(m.sessionPath(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := sonic.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (m *Manager) sessionPath(sessionID string) string {
	return filepath.Join(m.dir, sessionID+fileSuffix)
}
