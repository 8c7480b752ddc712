package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perrymcmanis144/tabstray/internal/shared/types"
	"github.com/perrymcmanis144/tabstray/internal/tabs"
)

type serverMessage struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	State   *types.State `json:"state"`
}

func dialTestServer(t *testing.T, store *tabs.Store) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewHandler(store, nil, nil)
	router.GET("/stream", handler.HandleConnection)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	var msg serverMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readState skips non-state frames (system, pong) until a snapshot arrives.
func readState(t *testing.T, conn *websocket.Conn) *types.State {
	t.Helper()
	for i := 0; i < 10; i++ {
		msg := readMessage(t, conn)
		if msg.Type == "state" {
			require.NotNil(t, msg.State)
			return msg.State
		}
	}
	t.Fatal("no state message received")
	return nil
}

func TestConnectionReceivesInitialSnapshot(t *testing.T) {
	store := tabs.NewStore()
	conn := dialTestServer(t, store)

	msg := readMessage(t, conn)
	assert.Equal(t, "system", msg.Type)
	assert.Contains(t, msg.Message, "Connected")

	state := readState(t, conn)
	assert.Equal(t, types.PageNormalTabs, state.Page)
	assert.Empty(t, state.Normal)
}

func TestOpenTabOverWebSocket(t *testing.T) {
	store := tabs.NewStore()
	conn := dialTestServer(t, store)
	readMessage(t, conn) // system
	readState(t, conn)   // initial snapshot

	require.NoError(t, conn.WriteJSON(Message{
		Type:  "open_tab",
		URL:   "https://example.com",
		Title: "Example",
	}))

	state := readState(t, conn)
	require.Len(t, state.Normal, 1)
	assert.Equal(t, "https://example.com", state.Normal[0].URL)
}

func TestDispatchesAreBroadcastToObservers(t *testing.T) {
	store := tabs.NewStore()
	conn := dialTestServer(t, store)
	readMessage(t, conn) // system
	readState(t, conn)   // initial snapshot

	// A change made outside the connection still reaches the client.
	store.Dispatch(tabs.SelectPage{Page: types.PagePrivateTabs})

	state := readState(t, conn)
	assert.Equal(t, types.PagePrivateTabs, state.Page)
	assert.EqualValues(t, 1, state.PageTransitions)
}

func TestUnknownMessageType(t *testing.T) {
	store := tabs.NewStore()
	conn := dialTestServer(t, store)
	readMessage(t, conn) // system
	readState(t, conn)   // initial snapshot

	require.NoError(t, conn.WriteJSON(Message{Type: "teleport"}))

	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
}

func TestPing(t *testing.T) {
	store := tabs.NewStore()
	conn := dialTestServer(t, store)
	readMessage(t, conn) // system
	readState(t, conn)   // initial snapshot

	require.NoError(t, conn.WriteJSON(Message{Type: "ping"}))

	msg := readMessage(t, conn)
	assert.Equal(t, "pong", msg.Type)
}
