package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/perrymcmanis144/tabstray/internal/api/middleware"
	"github.com/perrymcmanis144/tabstray/internal/config"
	"github.com/perrymcmanis144/tabstray/internal/http"
	"github.com/perrymcmanis144/tabstray/internal/logging"
	"github.com/perrymcmanis144/tabstray/internal/monitoring"
	"github.com/perrymcmanis144/tabstray/internal/session"
	"github.com/perrymcmanis144/tabstray/internal/sync"
	"github.com/perrymcmanis144/tabstray/internal/tabs"
	"github.com/perrymcmanis144/tabstray/internal/ws"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router    *gin.Engine
	store     *tabs.Store
	sessions  *session.Manager
	refresher *sync.Refresher
	logger    *logging.Logger

	cancelSync context.CancelFunc
}

// NewServer creates a server instance from configuration.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	metrics := monitoring.NewMetrics()

	store := tabs.NewStore().
		WithLogger(logger.Named("store")).
		WithMetrics(metrics)

	sessions, err := session.NewManager(store, cfg.Sessions.Dir)
	if err != nil {
		return nil, err
	}
	sessions = sessions.WithMetrics(metrics)

	// Synced tabs come from an external source; without an endpoint the
	// synced page just renders its last (empty) projection.
	var refresher *sync.Refresher
	if cfg.Sync.Enabled && cfg.Sync.Endpoint != "" {
		refresher = sync.NewRefresher(store, cfg.Sync.Endpoint, cfg.Sync.Interval).
			WithLogger(logger.Named("sync")).
			WithMetrics(metrics)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	var syncRequester http.SyncRequester
	if refresher != nil {
		syncRequester = refresher
	}
	handlers := http.NewHandlers(store, sessions, syncRequester, cfg.Tray.InactiveAfter)
	wsHandler := ws.NewHandler(store, logger.Named("ws"), metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Tab management
	router.GET("/tabs", handlers.GetTray)
	router.POST("/tabs", handlers.OpenTab)
	router.DELETE("/tabs/:id", handlers.CloseTab)

	// Tray paging and selection
	router.POST("/tray/page", handlers.SelectPage)
	router.POST("/tray/select", handlers.EnterSelectMode)
	router.DELETE("/tray/select", handlers.ExitSelectMode)
	router.POST("/tray/select/:id", handlers.AddSelectTab)
	router.DELETE("/tray/select/:id", handlers.RemoveSelectTab)
	router.POST("/tray/inactive", handlers.SetInactiveExpanded)

	// Session endpoints
	router.POST("/sessions/save", handlers.SaveSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.POST("/sessions/:id/restore", handlers.RestoreSession)
	router.DELETE("/sessions/:id", handlers.DeleteSession)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		router:    router,
		store:     store,
		sessions:  sessions,
		refresher: refresher,
		logger:    logger,
	}, nil
}

// Run starts background refresh and serves HTTP until the listener fails.
func (s *Server) Run(addr string) error {
	if s.refresher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancelSync = cancel
		go s.refresher.Run(ctx)
	}

	s.logger.Info("starting tabs tray service", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close stops background work and flushes state.
func (s *Server) Close() error {
	if s.cancelSync != nil {
		s.cancelSync()
	}
	// Keep the workspace recoverable across restarts.
	if _, err := s.sessions.SaveDefault(); err != nil {
		s.logger.Warn("failed to save default session", zap.Error(err))
	}
	return nil
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
