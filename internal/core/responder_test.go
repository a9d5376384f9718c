package core

import "testing"

const (
	testGreeting = "Olá! Como posso ajudar?"
	testFallback = "Desculpe, não entendi."
)

func TestMatchResponseKeyword(t *testing.T) {
	kb := []KnowledgeItem{
		{Keywords: []string{"preço", "valor"}, Response: "R$99/mo"},
	}

	got := MatchResponse("Qual o preço?", kb, testGreeting, testFallback)
	if got != "R$99/mo" {
		t.Errorf("got %q, want %q", got, "R$99/mo")
	}
}

func TestMatchResponseCaseInsensitive(t *testing.T) {
	kb := []KnowledgeItem{
		{Keywords: []string{"plano"}, Response: "Temos três planos."},
	}

	if got := MatchResponse("  QUAL PLANO VOCÊS TÊM?  ", kb, testGreeting, testFallback); got != "Temos três planos." {
		t.Errorf("got %q, want plan answer", got)
	}
	// Keyword casing is normalized too
	kb[0].Keywords = []string{"PLANO"}
	if got := MatchResponse("qual plano?", kb, testGreeting, testFallback); got != "Temos três planos." {
		t.Errorf("got %q, want plan answer for uppercase keyword", got)
	}
}

func TestMatchResponseFirstMatchWins(t *testing.T) {
	// The second entry matches "preço promocional" more specifically,
	// but list order decides: the first matching entry answers.
	kb := []KnowledgeItem{
		{Keywords: []string{"preço"}, Response: "first"},
		{Keywords: []string{"preço promocional"}, Response: "second"},
	}

	if got := MatchResponse("qual o preço promocional?", kb, testGreeting, testFallback); got != "first" {
		t.Errorf("got %q, want %q", got, "first")
	}
}

func TestMatchResponseGreeting(t *testing.T) {
	if got := MatchResponse("Bom dia", nil, testGreeting, testFallback); got != testGreeting {
		t.Errorf("got %q, want greeting", got)
	}
	if got := MatchResponse("boa noite, tudo bem?", nil, testGreeting, testFallback); got != testGreeting {
		t.Errorf("got %q, want greeting", got)
	}
}

func TestMatchResponseFallback(t *testing.T) {
	if got := MatchResponse("xyz123", nil, testGreeting, testFallback); got != testFallback {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestMatchResponseKnowledgeBeatsGreeting(t *testing.T) {
	// A message that is both a greeting and a keyword hit answers from
	// the knowledge base; greetings are only the no-match path.
	kb := []KnowledgeItem{
		{Keywords: []string{"bom dia"}, Response: "canned"},
	}
	if got := MatchResponse("bom dia", kb, testGreeting, testFallback); got != "canned" {
		t.Errorf("got %q, want %q", got, "canned")
	}
}

func TestMatchResponseDeterministic(t *testing.T) {
	kb := []KnowledgeItem{
		{Keywords: []string{"entrega", "frete"}, Response: "Entregamos em 5 dias."},
		{Keywords: []string{"preço"}, Response: "R$99/mo"},
	}
	msg := "quanto custa o frete?"

	first := MatchResponse(msg, kb, testGreeting, testFallback)
	for i := 0; i < 10; i++ {
		if got := MatchResponse(msg, kb, testGreeting, testFallback); got != first {
			t.Fatalf("response changed between calls: %q vs %q", first, got)
		}
	}
}

func TestParseKnowledge(t *testing.T) {
	items, err := ParseKnowledge(`[{"keywords":["preço"],"response":"R$99"}]`)
	if err != nil {
		t.Fatalf("ParseKnowledge failed: %v", err)
	}
	if len(items) != 1 || items[0].Response != "R$99" {
		t.Errorf("unexpected items: %+v", items)
	}

	if items, err := ParseKnowledge(""); err != nil || items != nil {
		t.Errorf("empty knowledge should parse to nil, got %v / %v", items, err)
	}

	if _, err := ParseKnowledge("{not json"); err == nil {
		t.Error("expected error for malformed knowledge")
	}
}
