package chatbot

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/airtable"
	"github.com/MarcinSar/veteyealk/apperr"
)

// sessionTTL bounds how long an idle conversation survives in redis.
const sessionTTL = 24 * time.Hour

const redisKeyPrefix = "chat:"

// CustomerInfo is collected step by step before a visit is booked.
type CustomerInfo struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// Context carries everything a conversation has learned so far. It is
// serialized to redis between turns, so every field must round-trip
// through JSON.
type Context struct {
	SessionID    string   `json:"session_id"`
	State        State    `json:"state"`
	StateHistory []string `json:"state_history,omitempty"`

	GDPRConsent bool             `json:"gdpr_consent"`
	Device      *airtable.Device `json:"device,omitempty"`

	IssueDescription string `json:"issue_description,omitempty"`
	AdditionalInfo   string `json:"additional_info,omitempty"`
	// Attempts counts deepened-diagnosis rounds before escalating to a
	// service visit.
	Attempts int `json:"attempts,omitempty"`

	AvailableSlots []time.Time `json:"available_slots,omitempty"`
	ShowingSlots   bool        `json:"showing_slots,omitempty"`
	// AwaitingPreferred marks that the next message should be parsed as
	// a preferred visit time instead of a slot number.
	AwaitingPreferred bool       `json:"awaiting_preferred,omitempty"`
	SelectedSlot      *time.Time `json:"selected_slot,omitempty"`

	Customer CustomerInfo `json:"customer"`
	// DataStep is one of: name, phone, email, address.
	DataStep string `json:"data_step,omitempty"`

	LastInteraction time.Time `json:"last_interaction"`
}

func newContext(sessionID string) *Context {
	return &Context{
		SessionID:       sessionID,
		State:           StateWelcome,
		DataStep:        "name",
		LastInteraction: time.Now(),
	}
}

// setState moves the conversation to next when the transition is valid.
func (s *Service) setState(ctx *Context, next State) bool {
	if !ctx.State.CanTransition(next) {
		s.Logger.WithFields(logrus.Fields{
			"session_id": ctx.SessionID,
			"from":       ctx.State,
			"to":         next,
		}).Warn("invalid state transition")
		return false
	}
	ctx.StateHistory = append(ctx.StateHistory, string(ctx.State))
	ctx.State = next
	s.Logger.WithFields(logrus.Fields{
		"session_id": ctx.SessionID,
		"state":      next,
	}).Info("state changed")
	return true
}

func (s *Service) loadContext(sessionID string) (*Context, error) {
	raw, err := s.Redis.Get(redisKeyPrefix + sessionID).Result()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrSessionExpired, "")
	}
	var ctx Context
	if err := json.Unmarshal([]byte(raw), &ctx); err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal, "")
	}
	return &ctx, nil
}

func (s *Service) saveContext(ctx *Context) error {
	ctx.LastInteraction = time.Now()
	raw, err := json.Marshal(ctx)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrInternal, "")
	}
	if err := s.Redis.Set(redisKeyPrefix+ctx.SessionID, raw, sessionTTL).Err(); err != nil {
		return apperr.Wrap(err, apperr.ErrInternal, "")
	}
	return nil
}
