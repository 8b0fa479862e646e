// Package knowledge holds the local technical knowledge base: device
// documentation, troubleshooting entries and usage guides loaded from
// JSON files on disk, searchable by device model and problem text.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Relevance thresholds per source. Troubleshooting entries carry the
// highest signal so they use the strictest cutoff.
const (
	troubleshootingThreshold = 0.2
	documentThreshold        = 0.1
	usageThreshold           = 0.15
	maxSolutions             = 5
)

var tokenPattern = regexp.MustCompile(`\w+`)

// Metadata describes which device and symptoms an entry applies to.
type Metadata struct {
	DeviceModel string   `json:"device_model"`
	Keywords    []string `json:"keywords"`
	Symptoms    []string `json:"symptoms"`
}

// Document is a fragment of technical documentation.
type Document struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Troubleshooting is a known problem with its resolution steps.
type Troubleshooting struct {
	Problem  string   `json:"problem"`
	Solution string   `json:"solution"`
	Metadata Metadata `json:"metadata"`
}

// UsageGuide is an operating instruction for a device.
type UsageGuide struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Solution is a single search hit with its relevance score.
type Solution struct {
	Type      string  `json:"type"`
	Content   string  `json:"content"`
	Relevance float64 `json:"relevance"`
}

// Base is the in-memory knowledge base.
type Base struct {
	Documents       []Document
	Troubleshooting []Troubleshooting
	UsageGuides     []UsageGuide
	Logger          *logrus.Logger
}

// Load reads documents.json, troubleshooting.json and usage.json from
// dataDir. Missing or malformed files are logged and treated as empty,
// the assistant still works with whatever loaded.
func Load(dataDir string, logger *logrus.Logger) *Base {
	if logger == nil {
		logger = log
	}
	b := &Base{Logger: logger}
	loadJSON(filepath.Join(dataDir, "documents.json"), &b.Documents, logger)
	loadJSON(filepath.Join(dataDir, "troubleshooting.json"), &b.Troubleshooting, logger)
	loadJSON(filepath.Join(dataDir, "usage.json"), &b.UsageGuides, logger)
	logger.WithFields(logrus.Fields{
		"documents":       len(b.Documents),
		"troubleshooting": len(b.Troubleshooting),
		"usage_guides":    len(b.UsageGuides),
	}).Info("knowledge base loaded")
	return b
}

func loadJSON(path string, out any, logger *logrus.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithFields(logrus.Fields{"path": path, "error": err.Error()}).Warn("knowledge file not loaded")
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.WithFields(logrus.Fields{"path": path, "error": err.Error()}).Error("knowledge file not parsed")
	}
}

// FindSolution searches the base for entries matching the device model
// and problem description. It returns at most five solutions ordered by
// relevance, plus a human-readable summary of what was found.
func (b *Base) FindSolution(model, problem string) ([]Solution, string) {
	tokens := tokenize(problem)

	solutions := b.searchTroubleshooting(model, problem, tokens)
	if len(solutions) < 3 {
		solutions = append(solutions, b.searchDocuments(model, tokens)...)
	}
	if len(solutions) < 3 {
		solutions = append(solutions, b.searchUsageGuides(model, problem)...)
	}

	sort.SliceStable(solutions, func(i, j int) bool {
		return solutions[i].Relevance > solutions[j].Relevance
	})
	if len(solutions) > maxSolutions {
		solutions = solutions[:maxSolutions]
	}
	return solutions, summarize(solutions)
}

func (b *Base) searchTroubleshooting(model, problem string, tokens []string) []Solution {
	var matches []Solution
	for _, item := range b.Troubleshooting {
		if item.Metadata.DeviceModel != "" && item.Metadata.DeviceModel != model {
			continue
		}
		content := item.Problem + " " + item.Solution
		relevance := keywordMatch(tokens, item.Metadata.Keywords)*0.4 +
			symptomMatch(problem, item.Metadata.Symptoms)*0.3 +
			Ratio(problem, content)*0.3
		if relevance > troubleshootingThreshold {
			matches = append(matches, Solution{
				Type:      "troubleshooting",
				Content:   fmt.Sprintf("Problem: %s\n\nRozwiązanie: %s", item.Problem, item.Solution),
				Relevance: relevance,
			})
		}
	}
	return matches
}

func (b *Base) searchDocuments(model string, tokens []string) []Solution {
	var matches []Solution
	for _, doc := range b.Documents {
		if model != "" && model != "unknown" && doc.Metadata.DeviceModel != "" && doc.Metadata.DeviceModel != model {
			continue
		}
		relevance := tokenOverlap(tokens, doc.Content)
		if relevance > documentThreshold {
			matches = append(matches, Solution{
				Type:      "document",
				Content:   doc.Content,
				Relevance: relevance,
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Relevance > matches[j].Relevance })
	if len(matches) > maxSolutions {
		matches = matches[:maxSolutions]
	}
	return matches
}

func (b *Base) searchUsageGuides(model, problem string) []Solution {
	var matches []Solution
	for _, guide := range b.UsageGuides {
		if guide.Metadata.DeviceModel != "" && guide.Metadata.DeviceModel != model {
			continue
		}
		similarity := Ratio(problem, guide.Content)
		if similarity > usageThreshold {
			matches = append(matches, Solution{
				Type:      "usage_guide",
				Content:   fmt.Sprintf("Instrukcja: %s\n\n%s", guide.Title, guide.Content),
				Relevance: similarity,
			})
		}
	}
	return matches
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// keywordMatch is the share of problem tokens that appear inside any of
// the entry's keywords.
func keywordMatch(tokens []string, keywords []string) float64 {
	if len(keywords) == 0 || len(tokens) == 0 {
		return 0
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	matched := 0
	for _, token := range tokens {
		for _, kw := range lowered {
			if strings.Contains(kw, token) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(tokens))
}

// symptomMatch is the best similarity between the problem text and any
// listed symptom. Short symptoms are skipped, they match too loosely.
func symptomMatch(problem string, symptoms []string) float64 {
	best := 0.0
	for _, symptom := range symptoms {
		if len(symptom) <= 5 {
			continue
		}
		if score := Ratio(problem, symptom); score > best {
			best = score
		}
	}
	return best
}

// tokenOverlap is the share of problem tokens present in the content.
func tokenOverlap(tokens []string, content string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	content = strings.ToLower(content)
	matched := 0
	for _, token := range tokens {
		if strings.Contains(content, token) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

func summarize(solutions []Solution) string {
	if len(solutions) == 0 {
		return "Nie znaleziono dopasowań w bazie wiedzy dla tego problemu."
	}
	for _, s := range solutions {
		if s.Type == "troubleshooting" {
			return fmt.Sprintf("Znaleziono %d potencjalnych rozwiązań tego problemu w bazie wiedzy.", len(solutions))
		}
	}
	return fmt.Sprintf("Znaleziono %d powiązanych informacji w bazie wiedzy.", len(solutions))
}
