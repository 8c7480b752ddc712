// Package id provides centralized ID generation for the tabs tray service.
//
// This package offers type-safe ULID generation with:
//   - Lexicographic sortability: tab order queries without timestamps
//   - Prefixed types: type-specific prefixes for debugging (tab_*, sess_*)
//   - Type safety: separate types prevent ID misuse
//
// Design Principles:
//   - ULIDs only: single ID format across the service
//   - K-sortable: creation order is recoverable from the id itself
//   - Debuggable: prefixes make logs readable
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// TabID identifies a locally owned tab.
type TabID string

// SessionID identifies a saved tray session.
type SessionID string

// ClientID identifies a connected WebSocket client.
type ClientID string

const (
	TabPrefix     = "tab"
	SessionPrefix = "sess"
	ClientPrefix  = "client"
)

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string.
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewTabID generates a new tab ID.
func NewTabID() TabID {
	return TabID(Default().GenerateWithPrefix(TabPrefix))
}

// NewSessionID generates a new session ID.
func NewSessionID() SessionID {
	return SessionID(Default().GenerateWithPrefix(SessionPrefix))
}

// NewClientID generates a new WebSocket client ID.
func NewClientID() ClientID {
	return ClientID(Default().GenerateWithPrefix(ClientPrefix))
}

func (id TabID) String() string     { return string(id) }
func (id SessionID) String() string { return string(id) }
func (id ClientID) String() string  { return string(id) }

// IsValid checks if an ID string is a valid ULID.
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Timestamp extracts the creation time from a prefixed or bare ULID string.
func Timestamp(id string) (time.Time, error) {
	if i := len(id) - 26; i > 0 {
		id = id[i:]
	}
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
