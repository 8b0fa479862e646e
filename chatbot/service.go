package chatbot

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/ai"
	"github.com/MarcinSar/veteyealk/airtable"
	"github.com/MarcinSar/veteyealk/calendar"
	"github.com/MarcinSar/veteyealk/config"
	"github.com/MarcinSar/veteyealk/knowledge"
	"github.com/MarcinSar/veteyealk/store"
)

var log = logrus.New()

// Notifier pushes booking confirmations. Nil-able, the assistant works
// without push notifications configured.
type Notifier interface {
	VisitBooked(ctx context.Context, topic, customerName string, when time.Time)
}

// Service wires the conversation engine to its dependencies and exposes
// the chat endpoints.
type Service struct {
	Redis     *redis.Client
	Db        *store.Store
	Airtable  *airtable.Client
	AI        *ai.Helper
	Knowledge *knowledge.Base
	Calendar  *calendar.Scheduler
	Config    config.Config
	Logger    *logrus.Logger
	Push      Notifier
}

func isYes(message string) bool {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "tak", "t", "yes", "y":
		return true
	}
	return false
}

func isNo(message string) bool {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "nie", "n", "no":
		return true
	}
	return false
}

// respond runs one turn of the conversation in its current state.
func (s *Service) respond(gctx context.Context, ctx *Context, message string) string {
	s.Logger.WithFields(logrus.Fields{
		"session_id": ctx.SessionID,
		"state":      ctx.State,
	}).Info("processing message")

	switch ctx.State {
	case StateWelcome, StateGDPR:
		return s.handleWelcome(ctx, message)
	case StateDeviceVerification:
		return s.handleDeviceVerification(gctx, ctx, message)
	case StateIssueAnalysis:
		return s.handleIssueAnalysis(gctx, ctx, message)
	case StateCheckResolution:
		return s.handleCheckResolution(ctx, message)
	case StateIssueReported:
		return s.handleIssueReported(ctx, message)
	case StateServiceScheduling:
		return s.handleServiceScheduling(gctx, ctx, message)
	case StateCollectCustomerInfo:
		return s.handleCollectCustomerInfo(ctx, message)
	case StateConfirmation:
		return s.handleConfirmation(gctx, ctx, message)
	case StateEnd:
		return s.handleEnd(ctx, message)
	default:
		s.Logger.WithField("state", ctx.State).Error("unknown conversation state")
		return genericErrorReply
	}
}
