// Package server exposes the timer engine to the host application over a
// local HTTP API, plus a server-sent-events stream of engine events.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"pomoflow/internal/core/engine"
	"pomoflow/internal/core/model"
)

// SessionReader provides read access to recorded sessions for the
// statistics endpoints.
type SessionReader interface {
	Recent(limit int) ([]model.SessionRecord, error)
	Stats() (model.Stats, error)
}

// Options contains optional server collaborators.
type Options struct {
	Logger *slog.Logger
	// PersistConfig is called after a config update is accepted by the
	// engine, typically to write the settings file. Failures are logged
	// and do not fail the request.
	PersistConfig func(model.Config) error
}

// Server is the pomoflow HTTP server.
type Server struct {
	engine   *engine.Engine
	sessions SessionReader
	router   *gin.Engine
	options  Options
	logger   *slog.Logger
}

// New creates a server wired to the given engine and session reader.
func New(eng *engine.Engine, sessions SessionReader, options Options) *Server {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine:   eng,
		sessions: sessions,
		router:   router,
		options:  options,
		logger:   logger,
	}

	api := router.Group("/api")
	{
		api.GET("/pomodoro", s.handleState)
		api.POST("/pomodoro/start", s.handleStart)
		api.POST("/pomodoro/pause", s.handlePause)
		api.POST("/pomodoro/reset", s.handleReset)
		api.POST("/pomodoro/skip", s.handleSkip)
		api.GET("/pomodoro/config", s.handleGetConfig)
		api.PUT("/pomodoro/config", s.handleUpdateConfig)
		api.GET("/sessions", s.handleSessions)
		api.GET("/sessions/stats", s.handleStats)
		api.GET("/events", s.handleEvents)
	}

	return s
}

// Run starts serving on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
