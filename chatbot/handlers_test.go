package chatbot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v7"
	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/config"
	"github.com/MarcinSar/veteyealk/store"
)

func chatTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("starting redis fake: %v", err)
	}
	t.Cleanup(mr.Close)

	db, err := store.Open(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	cfg := config.Config{}
	cfg.Defaults()

	svc := &Service{
		Redis:  redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		Db:     db,
		Config: cfg,
		Logger: logger,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	chat := r.Group("/chat")
	chat.POST("/session", svc.NewSession)
	chat.POST("/message", svc.Message)
	chat.GET("/session/:id/history", svc.History)
	return r
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Message   string `json:"message"`
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func openSession(t *testing.T, r *gin.Engine) chatResponse {
	t.Helper()
	w := postJSON(t, r, "/chat/session", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("session status = %d, body = %s", w.Code, w.Body.String())
	}
	var res chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding session response: %v", err)
	}
	return res
}

func TestNewSessionEndpoint(t *testing.T) {
	r := chatTestRouter(t)
	res := openSession(t, r)

	if res.SessionID == "" {
		t.Error("session_id missing")
	}
	if res.State != string(StateWelcome) {
		t.Errorf("state = %q, want %q", res.State, StateWelcome)
	}
	if !strings.Contains(res.Message, "Witaj w serwisie wsparcia technicznego") {
		t.Errorf("welcome message missing, got %q", res.Message)
	}

	// The welcome turn is already part of the transcript.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/session/"+res.SessionID+"/history", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var hist struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decoding history: %v", err)
	}
	if len(hist.Messages) != 1 || hist.Messages[0].Role != "assistant" {
		t.Errorf("history = %+v, want one assistant turn", hist.Messages)
	}
}

func TestMessageEndpoint(t *testing.T) {
	r := chatTestRouter(t)
	session := openSession(t, r)

	w := postJSON(t, r, "/chat/message", gin.H{
		"session_id": session.SessionID,
		"message":    "tak",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var res chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.State != string(StateDeviceVerification) {
		t.Errorf("state = %q, want %q", res.State, StateDeviceVerification)
	}
	if !strings.Contains(res.Message, "Dziękuję za zgodę") {
		t.Errorf("consent reply missing, got %q", res.Message)
	}

	// Both sides of the turn land in the transcript.
	hw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/session/"+session.SessionID+"/history", nil)
	r.ServeHTTP(hw, req)
	var hist struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(hw.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decoding history: %v", err)
	}
	if len(hist.Messages) != 3 {
		t.Fatalf("len(history) = %d, want welcome + user + assistant", len(hist.Messages))
	}
	if hist.Messages[1].Role != "user" || hist.Messages[2].Role != "assistant" {
		t.Errorf("history roles = %+v", hist.Messages)
	}
}

func TestMessageEndpointStatePersists(t *testing.T) {
	r := chatTestRouter(t)
	session := openSession(t, r)

	if w := postJSON(t, r, "/chat/message", gin.H{"session_id": session.SessionID, "message": "tak"}); w.Code != http.StatusOK {
		t.Fatalf("first turn status = %d", w.Code)
	}

	// The next turn must pick up where the last one left off.
	w := postJSON(t, r, "/chat/message", gin.H{"session_id": session.SessionID, "message": "dzień dobry"})
	if w.Code != http.StatusOK {
		t.Fatalf("second turn status = %d", w.Code)
	}
	var res chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.State != string(StateDeviceVerification) {
		t.Errorf("state = %q, want %q", res.State, StateDeviceVerification)
	}
	if !strings.Contains(res.Message, "numeru seryjnego") {
		t.Errorf("serial prompt missing, got %q", res.Message)
	}
}

func TestMessageEndpointValidation(t *testing.T) {
	r := chatTestRouter(t)

	w := postJSON(t, r, "/chat/message", gin.H{"session_id": "only-one-field"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_error") {
		t.Errorf("body = %s, want validation_error code", w.Body.String())
	}
}

func TestMessageEndpointExpiredSession(t *testing.T) {
	r := chatTestRouter(t)

	w := postJSON(t, r, "/chat/message", gin.H{"session_id": "gone", "message": "tak"})
	if w.Code != http.StatusGone {
		t.Errorf("status = %d, want 410", w.Code)
	}
	if !strings.Contains(w.Body.String(), "session_expired") {
		t.Errorf("body = %s, want session_expired code", w.Body.String())
	}
}
