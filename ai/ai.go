// Package ai wraps the OpenAI chat completion API for issue triage:
// initial diagnostic questions, knowledge-grounded analysis with a
// confidence score, and an on-topic guard for the chat.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/knowledge"
)

var log = logrus.New()

const defaultModel = openai.GPT4oMini

const analyzeSystemPrompt = `Jesteś asystentem technicznym specjalizującym się w ultrasonografach weterynaryjnych.
Twoje odpowiedzi powinny być:
1. Empatyczne i profesjonalne
2. Zawierać podstawowe pytania diagnostyczne
3. Skupiać się na wstępnej diagnozie problemu
4. Pytać o kluczowe szczegóły aby zrozumieć problem

Odpowiedź powinna być ZWIĘZŁA i KONKRETNA.`

const expertSystemPrompt = `Jesteś ekspertem technicznym specjalizującym się w ultrasonografach
i urządzeniach medycznych firmy Vet-Eye. Twoja wiedza techniczna jest na najwyższym poziomie.`

const confidenceSystemPrompt = `Jesteś systemem oceniającym trafność dopasowania rozwiązań technicznych.`

const topicSystemPrompt = `Jesteś filtrem tematycznym czatu serwisowego firmy Vet-Eye.
Oceń, czy wiadomość użytkownika dotyczy urządzeń Vet-Eye, ich obsługi, usterek lub serwisu.
Odpowiedz TYLKO obiektem JSON w formacie:
{"is_on_topic": true/false, "response": "krótka odpowiedź po polsku, gdy pytanie jest nie na temat"}`

const analyzeFallback = `Rozumiem zgłoszony problem. Aby pomóc w diagnozie, potrzebuję kilku dodatkowych informacji:

1. Kiedy problem wystąpił po raz pierwszy?
2. Czy pojawiają się jakieś komunikaty błędów?
3. Czy próbowano już jakichś rozwiązań?

Proszę o podanie tych szczegółów, żebym mógł lepiej zrozumieć sytuację.`

// Analysis is a knowledge-grounded diagnosis with the model's own
// confidence estimate on a 0-1 scale.
type Analysis struct {
	Solution   string  `json:"solution"`
	Confidence float64 `json:"confidence_score"`
}

// TopicCheck is the result of the on-topic guard.
type TopicCheck struct {
	IsOnTopic bool   `json:"is_on_topic"`
	Response  string `json:"response"`
}

// Helper issues the chat completions. Build it with NewHelper.
type Helper struct {
	client *openai.Client
	model  string
	Logger *logrus.Logger
}

// NewHelper returns a Helper using the default model. baseURL overrides
// the API endpoint and is meant for tests; pass "" in production.
func NewHelper(apiKey, baseURL string, logger *logrus.Logger) *Helper {
	if logger == nil {
		logger = log
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Helper{
		client: openai.NewClientWithConfig(cfg),
		model:  defaultModel,
		Logger: logger,
	}
}

func (h *Helper) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := h.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: h.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ai: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// AnalyzeIssue asks the model for first diagnostic questions about a
// freshly reported problem. On API failure it falls back to a canned
// set of questions so the conversation keeps moving.
func (h *Helper) AnalyzeIssue(ctx context.Context, issue string) string {
	result, err := h.complete(ctx, analyzeSystemPrompt, "Problem z urządzeniem: "+issue, 0.5, 500)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("analyze issue failed")
		return analyzeFallback
	}
	return result
}

// AnalyzeWithKnowledge produces a step-by-step solution grounded in the
// knowledge base hits, then asks the model to score its own confidence.
// A score that fails to parse becomes 0.5; a failed API call yields a
// low-confidence apology so the flow escalates to a service visit.
func (h *Helper) AnalyzeWithKnowledge(ctx context.Context, deviceModel, issue string, solutions []knowledge.Solution) Analysis {
	prompt := fmt.Sprintf(`Analiza problemu z urządzeniem medycznym:

Model urządzenia: %s
Zgłoszony problem: %s

Informacje z bazy wiedzy:
%s

Na podstawie powyższych informacji:
1. Zidentyfikuj prawdopodobną przyczynę problemu
2. Przedstaw konkretne rozwiązanie krok po kroku
3. Podaj dodatkowe wskazówki, które mogą być istotne
4. Zachowaj profesjonalny, ale przyjazny ton
5. Na końcu zapytaj, czy zaproponowane rozwiązanie pomogło

Twoja odpowiedź powinna być ZWIĘZŁA i na temat.`, deviceModel, issue, formatSolutions(solutions))

	result, err := h.complete(ctx, expertSystemPrompt, prompt, 0.3, 1000)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("knowledge analysis failed")
		return Analysis{
			Solution:   "Przepraszam, wystąpił błąd podczas analizy problemu. Sugeruję kontakt z serwisem.",
			Confidence: 0.1,
		}
	}

	return Analysis{Solution: result, Confidence: h.scoreConfidence(ctx, issue, result)}
}

func (h *Helper) scoreConfidence(ctx context.Context, issue, solution string) float64 {
	prompt := fmt.Sprintf(`Na podstawie:
1. Opisu problemu: "%s"
2. Dostępnych rozwiązań z bazy wiedzy
3. Wygenerowanej odpowiedzi: "%s"

Oceń poziom pewności odpowiedzi w skali 0.0-1.0, gdzie:
- 0.0-0.3: Niski poziom pewności - odpowiedź jest ogólna, brak konkretnego dopasowania w bazie wiedzy
- 0.4-0.7: Średni poziom pewności - częściowe dopasowanie, ale mogą być potrzebne dodatkowe informacje
- 0.8-1.0: Wysoki poziom pewności - bardzo dobre dopasowanie, rozwiązanie powinno być skuteczne

Zwróć TYLKO liczbę bez dodatkowego tekstu.`, issue, solution)

	raw, err := h.complete(ctx, confidenceSystemPrompt, prompt, 0.1, 10)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"error": err.Error()}).Warn("confidence scoring failed")
		return 0.5
	}
	confidence, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0.5
	}
	return confidence
}

// IsOnTopic classifies whether a chat message belongs to the Vet-Eye
// service domain. Errors default to on-topic so legitimate questions
// are never blocked by a flaky classifier.
func (h *Helper) IsOnTopic(ctx context.Context, message string) TopicCheck {
	raw, err := h.complete(ctx, topicSystemPrompt, message, 0.1, 200)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"error": err.Error()}).Warn("topic check failed")
		return TopicCheck{IsOnTopic: true}
	}
	var check TopicCheck
	if err := json.Unmarshal([]byte(extractJSON(raw)), &check); err != nil {
		return TopicCheck{IsOnTopic: true}
	}
	if !check.IsOnTopic && check.Response == "" {
		check.Response = "Przepraszam, mogę odpowiadać tylko na pytania związane z urządzeniami Vet-Eye."
	}
	return check
}

// extractJSON trims any prose the model wrapped around the JSON object.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// ServiceQuestions lists what a technician needs answered before a
// service request is filed.
func ServiceQuestions() []string {
	return []string{
		"Kiedy problem wystąpił po raz pierwszy?",
		"Jak często występuje problem?",
		"Czy urządzenie pokazuje jakieś komunikaty błędów?",
		"Czy próbowano już jakichś rozwiązań?",
		"Czy problem występuje w określonych warunkach?",
		"Czy urządzenie działa w trybie awaryjnym?",
		"Jakiej pilności jest zgłoszenie?",
	}
}

func formatSolutions(solutions []knowledge.Solution) string {
	if len(solutions) == 0 {
		return "Brak dokładnych dopasowań w bazie wiedzy dla tego problemu."
	}
	var b strings.Builder
	for i, s := range solutions {
		fmt.Fprintf(&b, "Rozwiązanie %d (Trafność: %.0f%%, Typ: %s):\n%s\n\n", i+1, s.Relevance*100, s.Type, s.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
