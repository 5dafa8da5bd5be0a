package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pomoflow/internal/core/engine"
	"pomoflow/internal/core/model"
)

// statePayload decorates a snapshot with the derived display fields the
// host UI would otherwise recompute.
type statePayload struct {
	engine.Snapshot
	PhaseName string  `json:"phase_name"`
	Formatted string  `json:"formatted"`
	Progress  float64 `json:"progress"`
}

func newStatePayload(snap engine.Snapshot) statePayload {
	return statePayload{
		Snapshot:  snap,
		PhaseName: snap.Phase.DisplayName(),
		Formatted: snap.FormatRemaining(),
		Progress:  snap.Progress(),
	}
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func (s *Server) handleState(c *gin.Context) {
	respond(c, newStatePayload(s.engine.State()))
}

func (s *Server) handleStart(c *gin.Context) {
	respond(c, newStatePayload(s.engine.Start()))
}

func (s *Server) handlePause(c *gin.Context) {
	respond(c, newStatePayload(s.engine.Pause()))
}

func (s *Server) handleReset(c *gin.Context) {
	respond(c, newStatePayload(s.engine.Reset()))
}

func (s *Server) handleSkip(c *gin.Context) {
	respond(c, newStatePayload(s.engine.Skip()))
}

func (s *Server) handleGetConfig(c *gin.Context) {
	respond(c, s.engine.Config())
}

func (s *Server) handleUpdateConfig(c *gin.Context) {
	var config model.Config
	if err := c.ShouldBindJSON(&config); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := s.engine.UpdateConfig(config); err != nil {
		if errors.Is(err, model.ErrValidation) {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	if s.options.PersistConfig != nil {
		if err := s.options.PersistConfig(config); err != nil {
			s.logger.Warn("config not persisted", "error", err)
		}
	}
	respond(c, config)
}

func (s *Server) handleSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := s.sessions.Recent(limit)
	if err != nil {
		s.logger.Error("session listing failed", "error", err)
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []model.SessionRecord{}
	}
	respond(c, records)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.sessions.Stats()
	if err != nil {
		s.logger.Error("session stats failed", "error", err)
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respond(c, stats)
}

// handleEvents streams engine events as server-sent events. Each event is
// named after its kind (tick or phase_completed) with the JSON event as
// payload. Clients that connect late should fetch /api/pomodoro first.
func (s *Server) handleEvents(c *gin.Context) {
	ch := s.engine.Subscribe(32)
	defer s.engine.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
