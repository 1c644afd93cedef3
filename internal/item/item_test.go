package item

import (
	"strings"
	"testing"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/tokenizer"
)

func longDescription() []string {
	return []string{
		strings.Repeat("Sturdy stainless steel kettle with a comfortable handle. ", 4),
		strings.Repeat("Boils water quickly and switches off automatically when done. ", 4),
	}
}

func TestNewAcceptsLongRecord(t *testing.T) {
	tok := tokenizer.Runes{}
	raw := Raw{Title: "Electric Kettle", Price: "19.99", Description: longDescription()}

	it := New(raw, 19.99, tok)
	if !it.Include {
		t.Fatal("Expected item to be included")
	}
	if it.Prompt == "" {
		t.Fatal("Included item must have a prompt")
	}
	if it.TokenCount != len(tok.Encode(it.Prompt)) {
		t.Errorf("TokenCount %d does not match prompt length %d", it.TokenCount, len(tok.Encode(it.Prompt)))
	}
	if n := strings.Count(it.Prompt, Prefix); n != 1 {
		t.Errorf("Expected exactly one price prefix, got %d", n)
	}
	if !strings.HasPrefix(it.Prompt, Question+"\n\n") {
		t.Errorf("Prompt does not start with question: %q", it.Prompt)
	}
	if !strings.HasSuffix(it.Prompt, "\n\nPrice is $20.00") {
		t.Errorf("Prompt does not end with rounded price: %q", it.Prompt)
	}
	if it.Category != "" {
		t.Errorf("Category must be unset after construction, got %q", it.Category)
	}

	// Question, blank line, at most MaxTokens of text, blank line, price line.
	body := strings.TrimSuffix(strings.TrimPrefix(it.Prompt, Question+"\n\n"), "\n\nPrice is $20.00")
	if got := len(tok.Encode(body)); got != MaxTokens {
		t.Errorf("Expected body truncated to %d tokens, got %d", MaxTokens, got)
	}
	if !strings.HasPrefix(body, "Electric Kettle\nSturdy stainless") {
		t.Errorf("Unexpected body start: %q", body[:40])
	}
}

func TestNewRejectsShortContent(t *testing.T) {
	raw := Raw{
		Title:       "Widget",
		Price:       "12.50",
		Description: []string{"A solid plastic widget measured at 5cm, batteries included"},
		Details:     `{"Batteries Included?": "Yes"}`,
	}
	it := New(raw, 12.50, tokenizer.Runes{})
	if it.Include {
		t.Error("Expected short record to be rejected")
	}
	if it.Prompt != "" || it.TokenCount != 0 {
		t.Errorf("Rejected item must be inert, got prompt %q tokens %d", it.Prompt, it.TokenCount)
	}
	if it.Title != "Widget" || it.Price != 12.50 {
		t.Errorf("Unexpected title/price: %v", it)
	}
}

func TestNewCharacterFloor(t *testing.T) {
	tok := tokenizer.Runes{}
	// The description is followed by a newline, so 299 characters make 300.
	atFloor := New(Raw{Title: "Thing", Description: []string{strings.Repeat("x", 299)}}, 10, tok)
	if atFloor.Include {
		t.Error("Expected 300 characters of content to be rejected")
	}
	above := New(Raw{Title: "Thing", Description: []string{strings.Repeat("x", 300)}}, 10, tok)
	if !above.Include {
		t.Error("Expected 301 characters of content to be accepted")
	}
}

func TestNewTokenFloor(t *testing.T) {
	// Long enough in characters, but scrubbing leaves almost nothing to tokenize.
	raw := Raw{Title: "Part", Description: []string{strings.Repeat("ABC12345 [] ", 40)}}
	it := New(raw, 10, tokenizer.Runes{})
	if it.Include {
		t.Error("Expected record below the token floor to be rejected")
	}
}

func TestNewCountsFeaturesAndDetails(t *testing.T) {
	raw := Raw{
		Title:       "Lamp",
		Description: []string{strings.Repeat("d", 60)},
		Features:    []string{strings.Repeat("f", 60)},
		Details:     `{"Brand": "` + strings.Repeat("b", 200) + `"}`,
	}
	it := New(raw, 42, tokenizer.Runes{})
	if !it.Include {
		t.Fatal("Expected description, features and details together to pass the floor")
	}
	if it.Details != raw.Details {
		t.Errorf("Expected raw details kept, got %q", it.Details)
	}
	if !strings.Contains(it.Prompt, "Brand") {
		t.Errorf("Expected details text in prompt: %q", it.Prompt)
	}
}

func TestTestPrompt(t *testing.T) {
	raw := Raw{Title: "Electric Kettle", Description: longDescription()}
	it := New(raw, 347.25, tokenizer.Runes{})
	if !it.Include {
		t.Fatal("Expected item to be included")
	}
	tp := it.TestPrompt()
	if !strings.HasSuffix(tp, Prefix) {
		t.Errorf("Test prompt must end with %q: %q", Prefix, tp)
	}
	if !strings.HasPrefix(it.Prompt, tp) || len(tp) >= len(it.Prompt) {
		t.Error("Test prompt must be a strict prefix of the prompt")
	}
	if strings.Contains(tp, "347") {
		t.Error("Test prompt leaks the price")
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{19.99, "$20.00"},
		{5.00, "$5.00"},
		{0.5, "$0.00"},
		{2.5, "$2.00"},
		{3.5, "$4.00"},
		{999.49, "$999.00"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	it := &Item{Title: "Widget", Price: 12.5}
	if got := it.String(); got != "<Widget = $12.5>" {
		t.Errorf("Unexpected String(): %q", got)
	}
}
