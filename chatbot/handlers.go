package chatbot

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/apperr"
	"github.com/MarcinSar/veteyealk/calendar"
)

type messageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// NewSession opens a conversation and returns the welcome message.
func (s *Service) NewSession(c *gin.Context) {
	sessionID := uuid.NewString()
	ctx := newContext(sessionID)
	if err := s.saveContext(ctx); err != nil {
		c.JSON(apperr.Status(err), apperr.Payload(err))
		return
	}
	if err := s.Db.SaveMessage(c.Request.Context(), sessionID, "assistant", welcomeMessage, string(ctx.State)); err != nil {
		s.Logger.WithField("error", err.Error()).Error("saving welcome message failed")
	}
	s.Logger.WithField("session_id", sessionID).Info("session started")
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sessionID,
		"state":      ctx.State,
		"message":    welcomeMessage,
	})
}

// Message runs one turn of the conversation.
func (s *Service) Message(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		e := apperr.Wrap(err, apperr.ErrValidation, "session_id and message are required")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}

	ctx, err := s.loadContext(req.SessionID)
	if err != nil {
		c.JSON(apperr.Status(err), apperr.Payload(err))
		return
	}

	reply := s.respond(c.Request.Context(), ctx, req.Message)

	if err := s.saveContext(ctx); err != nil {
		c.JSON(apperr.Status(err), apperr.Payload(err))
		return
	}

	gctx := c.Request.Context()
	if err := s.Db.SaveMessage(gctx, req.SessionID, "user", req.Message, string(ctx.State)); err != nil {
		s.Logger.WithField("error", err.Error()).Error("saving user message failed")
	}
	if err := s.Db.SaveMessage(gctx, req.SessionID, "assistant", reply, string(ctx.State)); err != nil {
		s.Logger.WithField("error", err.Error()).Error("saving assistant message failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"state":      ctx.State,
		"message":    reply,
	})
}

// History returns the transcript of a session.
func (s *Service) History(c *gin.Context) {
	sessionID := c.Param("id")
	msgs, err := s.Db.History(c.Request.Context(), sessionID)
	if err != nil {
		e := apperr.Wrap(err, apperr.ErrDatabase, "")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	type turn struct {
		Role    string `json:"role"`
		Content string `json:"content"`
		State   string `json:"state,omitempty"`
	}
	turns := make([]turn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, turn{Role: m.Role, Content: m.Content, State: m.State})
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "messages": turns})
}

type verifyDeviceRequest struct {
	Serial string `json:"serial" binding:"required,serial"`
}

// VerifyDevice looks a device up by serial number outside a chat flow.
func (s *Service) VerifyDevice(c *gin.Context) {
	var req verifyDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		e := apperr.Wrap(err, apperr.ErrValidation, "serial is required")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	device, err := s.Airtable.DeviceBySerial(c.Request.Context(), req.Serial)
	if err != nil {
		e := apperr.Wrap(err, apperr.ErrNotFound, "device not found")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	c.JSON(http.StatusOK, device)
}

// KnowledgeSearch exposes the knowledge base over HTTP.
func (s *Service) KnowledgeSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		e := apperr.New("validation_error", http.StatusBadRequest, "q is required")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	model := c.DefaultQuery("model", "unknown")
	solutions, summary := s.Knowledge.FindSolution(model, query)
	c.JSON(http.StatusOK, gin.H{
		"solutions": solutions,
		"summary":   summary,
	})
}

// Slots lists the currently available visit slots.
func (s *Service) Slots(c *gin.Context) {
	occupied, err := s.Airtable.OccupiedSlots(c.Request.Context())
	if err != nil {
		e := apperr.Wrap(err, apperr.ErrAirtable, "")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	slots := s.Calendar.AvailableSlots(occupied)
	type slotView struct {
		Time      string `json:"time"`
		Formatted string `json:"formatted"`
	}
	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, slotView{
			Time:      slot.Format("2006-01-02T15:04:05Z07:00"),
			Formatted: calendar.FormatSlot(slot),
		})
	}
	c.JSON(http.StatusOK, gin.H{"slots": views})
}

// Health pings the dependencies the assistant cannot run without.
func (s *Service) Health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"redis": "ok", "airtable": "ok"}

	if err := s.Redis.Ping().Err(); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := s.Airtable.Healthcheck(c.Request.Context()); err != nil {
		checks["airtable"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	s.Logger.WithFields(logrus.Fields{"status": status}).Debug("healthcheck")
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
