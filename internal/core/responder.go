package core

import (
	"encoding/json"
	"strings"
)

// KnowledgeItem is one keyword-to-response rule. A chatbot's knowledge
// base is an ordered list of these; order decides which rule answers.
type KnowledgeItem struct {
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`
}

// Greeting substrings recognized when no knowledge rule matches.
var greetingWords = []string{"olá", "oi", "bom dia", "boa tarde", "boa noite"}

// ParseKnowledge decodes a chatbot's stored knowledge JSON. An empty
// string is an empty knowledge base, not an error.
func ParseKnowledge(raw string) ([]KnowledgeItem, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var items []KnowledgeItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MatchResponse picks the bot's reply for a visitor message.
//
// The message is lowercased and trimmed, then the knowledge items are
// scanned in list order; the first item with any keyword appearing as
// a case-insensitive substring wins. No scoring, no longest-match
// preference. When nothing matches, a greeting-looking message gets
// the greeting, everything else the fallback.
func MatchResponse(message string, items []KnowledgeItem, greeting, fallback string) string {
	msg := strings.ToLower(strings.TrimSpace(message))

	for _, item := range items {
		for _, kw := range item.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(msg, kw) {
				return item.Response
			}
		}
	}

	for _, g := range greetingWords {
		if strings.Contains(msg, g) {
			return greeting
		}
	}

	return fallback
}
