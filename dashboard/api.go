// Package dashboard serves the operations view: filed service requests,
// per-status counts and session transcripts, guarded by JWT auth.
package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/apperr"
	"github.com/MarcinSar/veteyealk/store"
)

// Service exposes the dashboard endpoints over the local store.
type Service struct {
	Db     *store.Store
	Logger *logrus.Logger
}

// Requests lists filed service requests, optionally filtered by the
// status query parameter. limit defaults to 50.
func (s *Service) Requests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := c.Query("status")

	requests, err := s.Db.ServiceRequests(c.Request.Context(), status, limit)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("listing service requests failed")
		e := apperr.Wrap(err, apperr.ErrDatabase, "")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

// Request returns one filed service request by its id.
func (s *Service) Request(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be numeric", "code": "bad_request"})
		return
	}
	req, err := s.Db.ServiceRequestByID(c.Request.Context(), uint(id))
	if err != nil {
		s.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("loading service request failed")
		e := apperr.Wrap(err, apperr.ErrDatabase, "")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no such service request", "code": "not_found"})
		return
	}
	c.JSON(http.StatusOK, req)
}

// Stats returns request counts per status.
func (s *Service) Stats(c *gin.Context) {
	stats, err := s.Db.Stats(c.Request.Context())
	if err != nil {
		s.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("loading stats failed")
		e := apperr.Wrap(err, apperr.ErrDatabase, "")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Transcript returns the chat history of one session for support
// follow-up.
func (s *Service) Transcript(c *gin.Context) {
	sessionID := c.Param("id")
	msgs, err := s.Db.History(c.Request.Context(), sessionID)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("loading transcript failed")
		e := apperr.Wrap(err, apperr.ErrDatabase, "")
		c.JSON(e.Status, apperr.Payload(e))
		return
	}
	if len(msgs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "no messages for session", "code": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "messages": msgs})
}
