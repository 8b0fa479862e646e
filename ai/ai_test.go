package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/knowledge"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"is_on_topic": true}`, `{"is_on_topic": true}`},
		{"prose wrapped", "Oto wynik: {\"is_on_topic\": false} - pozdrawiam", `{"is_on_topic": false}`},
		{"code fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no json at all", "nie wiem", "nie wiem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.raw); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatSolutions(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := formatSolutions(nil)
		if !strings.Contains(got, "Brak dokładnych dopasowań") {
			t.Errorf("formatSolutions(nil) = %q", got)
		}
	})
	t.Run("numbered with relevance", func(t *testing.T) {
		got := formatSolutions([]knowledge.Solution{
			{Content: "Sprawdź kabel", Relevance: 0.8, Type: "troubleshooting"},
			{Content: "Wyczyść głowicę", Relevance: 0.25, Type: "documentation"},
		})
		if !strings.Contains(got, "Rozwiązanie 1 (Trafność: 80%, Typ: troubleshooting)") {
			t.Errorf("missing first header in %q", got)
		}
		if !strings.Contains(got, "Rozwiązanie 2 (Trafność: 25%, Typ: documentation)") {
			t.Errorf("missing second header in %q", got)
		}
	})
}

// fakeOpenAI serves canned chat completions keyed by the system prompt.
func fakeOpenAI(t *testing.T, reply func(system, user string) string) *Helper {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("got %d messages, want system + user", len(req.Messages))
		}
		content := reply(req.Messages[0].Content, req.Messages[1].Content)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewHelper("test-key", srv.URL+"/v1", logger)
}

func TestAnalyzeWithKnowledge(t *testing.T) {
	h := fakeOpenAI(t, func(system, user string) string {
		if strings.Contains(system, "systemem oceniającym") {
			return "0.8"
		}
		if !strings.Contains(user, "Sprawdź kabel zasilający") {
			t.Errorf("knowledge hit missing from prompt: %q", user)
		}
		return "Proponuję sprawdzić zasilanie."
	})

	analysis := h.AnalyzeWithKnowledge(context.Background(), "VetScan X5", "nie włącza się",
		[]knowledge.Solution{{Content: "Sprawdź kabel zasilający", Relevance: 0.6, Type: "troubleshooting"}})
	if analysis.Solution != "Proponuję sprawdzić zasilanie." {
		t.Errorf("solution = %q", analysis.Solution)
	}
	if analysis.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", analysis.Confidence)
	}
}

func TestAnalyzeWithKnowledgeBadScore(t *testing.T) {
	h := fakeOpenAI(t, func(system, user string) string {
		if strings.Contains(system, "systemem oceniającym") {
			return "jakieś pół"
		}
		return "Rozwiązanie."
	})

	analysis := h.AnalyzeWithKnowledge(context.Background(), "X", "problem", nil)
	if analysis.Confidence != 0.5 {
		t.Errorf("unparseable score should default to 0.5, got %v", analysis.Confidence)
	}
}

func TestAnalyzeWithKnowledgeAPIFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewHelper("test-key", "http://127.0.0.1:1/v1", logger)

	analysis := h.AnalyzeWithKnowledge(context.Background(), "X", "problem", nil)
	if analysis.Confidence != 0.1 {
		t.Errorf("api failure confidence = %v, want 0.1", analysis.Confidence)
	}
	if !strings.Contains(analysis.Solution, "kontakt z serwisem") {
		t.Errorf("api failure solution = %q", analysis.Solution)
	}
}

func TestIsOnTopic(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantOnTopic  bool
		wantResponse string
	}{
		{"on topic", `{"is_on_topic": true, "response": ""}`, true, ""},
		{"off topic with reply", `{"is_on_topic": false, "response": "Nie pomagam w tym."}`, false, "Nie pomagam w tym."},
		{"off topic empty reply gets default", `{"is_on_topic": false, "response": ""}`, false,
			"Przepraszam, mogę odpowiadać tylko na pytania związane z urządzeniami Vet-Eye."},
		{"garbage defaults to on topic", "nie wiem co odpowiedzieć", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := fakeOpenAI(t, func(system, user string) string { return tt.raw })
			check := h.IsOnTopic(context.Background(), "czy umiesz gotować?")
			if check.IsOnTopic != tt.wantOnTopic {
				t.Errorf("IsOnTopic = %v, want %v", check.IsOnTopic, tt.wantOnTopic)
			}
			if check.Response != tt.wantResponse {
				t.Errorf("Response = %q, want %q", check.Response, tt.wantResponse)
			}
		})
	}
}

func TestIsOnTopicAPIFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewHelper("test-key", "http://127.0.0.1:1/v1", logger)

	check := h.IsOnTopic(context.Background(), "pytanie")
	if !check.IsOnTopic {
		t.Error("classifier failure must not block the conversation")
	}
}

func TestAnalyzeIssueFallback(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewHelper("test-key", "http://127.0.0.1:1/v1", logger)

	got := h.AnalyzeIssue(context.Background(), "nie działa")
	if got != analyzeFallback {
		t.Errorf("AnalyzeIssue on api failure = %q, want canned fallback", got)
	}
}
