package ws

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/perrymcmanis144/tabstray/internal/logging"
	"github.com/perrymcmanis144/tabstray/internal/monitoring"
	"github.com/perrymcmanis144/tabstray/internal/shared/id"
	"github.com/perrymcmanis144/tabstray/internal/shared/types"
	"github.com/perrymcmanis144/tabstray/internal/tabs"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// outboundSize bounds a client's send queue. A client that cannot drain
// it loses intermediate snapshots, never the connection.
const outboundSize = 32

// Message is the envelope for client -> server messages.
type Message struct {
	Type     string     `json:"type"`
	ID       string     `json:"id,omitempty"`
	URL      string     `json:"url,omitempty"`
	Title    string     `json:"title,omitempty"`
	Private  bool       `json:"private,omitempty"`
	Page     types.Page `json:"page,omitempty"`
	Expanded bool       `json:"expanded,omitempty"`
}

// Handler manages WebSocket connections streaming tray snapshots.
type Handler struct {
	store   *tabs.Store
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler.
func NewHandler(store *tabs.Store, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{store: store, logger: logger, metrics: metrics}
}

// client is one connected tray observer with its own send queue, so a
// slow reader never blocks store dispatch.
type client struct {
	id   id.ClientID
	sock *websocket.Conn
	out  chan interface{}
}

// send enqueues without blocking; full queues drop the message.
func (c *client) send(msg interface{}) bool {
	select {
	case c.out <- msg:
		return true
	default:
		return false
	}
}

// HandleConnection upgrades the request and serves the snapshot stream.
func (h *Handler) HandleConnection(c *gin.Context) {
	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		id:   id.NewClientID(),
		sock: sock,
		out:  make(chan interface{}, outboundSize),
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	h.logger.Debug("tray client connected", zap.String("client_id", cl.id.String()))

	done := make(chan struct{})
	go h.writeLoop(cl, done)

	cl.send(gin.H{
		"type":      "system",
		"message":   "Connected to Tabs Tray Service",
		"client_id": cl.id.String(),
	})
	cl.send(h.stateMessage(h.store.Snapshot()))

	// Every committed snapshot goes to this client, in commit order. The
	// callback only enqueues, keeping the dispatch path unblocked.
	unsubscribe := h.store.Subscribe(func(state *types.State) {
		if !cl.send(h.stateMessage(state)) {
			h.logger.Warn("dropping snapshot for slow client",
				zap.String("client_id", cl.id.String()))
		}
	})

	h.readLoop(cl)

	unsubscribe()
	close(cl.out)
	<-done
	sock.Close()
	h.logger.Debug("tray client disconnected", zap.String("client_id", cl.id.String()))
}

// readLoop consumes client messages until the connection drops.
func (h *Handler) readLoop(cl *client) {
	for {
		var msg Message
		if err := cl.sock.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "ping":
			cl.send(gin.H{"type": "pong", "timestamp": time.Now().Unix()})
		case "open_tab":
			if strings.TrimSpace(msg.URL) == "" {
				cl.send(errorMessage("url is required"))
				continue
			}
			h.store.Dispatch(tabs.OpenTab{Tab: newTab(msg)})
		case "close_tab":
			h.store.Dispatch(tabs.CloseTab{ID: msg.ID})
		case "select_page":
			h.store.Dispatch(tabs.SelectPage{Page: msg.Page})
		case "enter_select_mode":
			h.store.Dispatch(tabs.EnterSelectMode{})
		case "exit_select_mode":
			h.store.Dispatch(tabs.ExitSelectMode{})
		case "add_select_tab":
			h.store.Dispatch(tabs.AddSelectTab{ID: msg.ID})
		case "remove_select_tab":
			h.store.Dispatch(tabs.RemoveSelectTab{ID: msg.ID})
		case "set_inactive_expanded":
			h.store.Dispatch(tabs.SetInactiveExpanded{Expanded: msg.Expanded})
		default:
			cl.send(errorMessage("unknown message type"))
		}
	}
}

// writeLoop is the single writer for a connection.
func (h *Handler) writeLoop(cl *client, done chan struct{}) {
	defer close(done)
	for msg := range cl.out {
		if err := cl.sock.WriteJSON(msg); err != nil {
			h.logger.Debug("websocket write error", zap.Error(err))
			// Drain remaining messages so senders never stall.
			for range cl.out {
			}
			return
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("out", "state")
		}
	}
}

func (h *Handler) stateMessage(state *types.State) gin.H {
	return gin.H{
		"type":      "state",
		"state":     state,
		"timestamp": time.Now().Unix(),
	}
}

func errorMessage(msg string) gin.H {
	return gin.H{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	}
}

func newTab(msg Message) types.Tab {
	collection := types.CollectionNormal
	if msg.Private {
		collection = types.CollectionPrivate
	}
	now := time.Now()
	return types.Tab{
		ID:           string(id.NewTabID()),
		Collection:   collection,
		URL:          msg.URL,
		Title:        msg.Title,
		Media:        types.MediaNone,
		CreatedAt:    now,
		LastAccessed: now,
	}
}
