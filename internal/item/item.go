package item

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/tokenizer"
)

// Token and character bounds for a usable item.
const (
	MinTokens    = 150
	MaxTokens    = 160
	MinChars     = 300
	CeilingChars = MaxTokens * 7
)

// Prompt template pieces.
const (
	Question = "How much does this cost to the nearest dollar?"
	Prefix   = "Price is $"
)

// Raw is one unprocessed catalog entry. Price is kept as the source text
// (possibly empty); Details is the attributes map rendered as JSON text.
type Raw struct {
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Description []string `json:"description"`
	Features    []string `json:"features"`
	Details     string   `json:"details"`
}

// Item is a curated datapoint: a product title, its price, and the fixed-shape
// training prompt built from the product text. Prompt is non-empty iff Include.
type Item struct {
	Title      string
	Price      float64
	Category   string
	Details    string
	TokenCount int
	Prompt     string
	Include    bool
}

// New builds an Item from raw and an already range-checked price. Items that
// fail the character or token floor come back with Include false.
func New(raw Raw, price float64, tok tokenizer.Tokenizer) *Item {
	it := &Item{Title: raw.Title, Price: price, Details: raw.Details}
	it.parse(raw, tok)
	return it
}

func (it *Item) parse(raw Raw, tok tokenizer.Tokenizer) {
	contents := strings.Join(raw.Description, "\n")
	if contents != "" {
		contents += "\n"
	}
	if features := strings.Join(raw.Features, "\n"); features != "" {
		contents += features + "\n"
	}
	if it.Details != "" {
		contents += ScrubDetails(it.Details) + "\n"
	}

	if utf8.RuneCountInString(contents) <= MinChars {
		return
	}
	contents = truncateRunes(contents, CeilingChars)
	text := Scrub(it.Title) + "\n" + Scrub(contents)

	tokens := tok.Encode(text)
	if len(tokens) <= MinTokens {
		return
	}
	if len(tokens) > MaxTokens {
		tokens = tokens[:MaxTokens]
	}
	// The decoded text is not re-validated; a truncated sequence need not
	// re-encode to the same length.
	text = tok.Decode(tokens)
	it.makePrompt(text, tok)
	it.Include = true
}

func (it *Item) makePrompt(text string, tok tokenizer.Tokenizer) {
	it.Prompt = Question + "\n\n" + text + "\n\n" + Prefix + RoundedPrice(it.Price) + ".00"
	it.TokenCount = len(tok.Encode(it.Prompt))
}

// TestPrompt is the prompt cut just after the price prefix, so a predictor
// sees everything except the answer.
func (it *Item) TestPrompt() string {
	if i := strings.Index(it.Prompt, Prefix); i >= 0 {
		return it.Prompt[:i] + Prefix
	}
	return it.Prompt + Prefix
}

func (it *Item) String() string {
	return fmt.Sprintf("<%s = $%s>", it.Title, strconv.FormatFloat(it.Price, 'f', -1, 64))
}

// RoundedPrice renders price rounded half-to-even to a whole dollar.
func RoundedPrice(price float64) string {
	return strconv.FormatInt(int64(math.RoundToEven(price)), 10)
}

// FormatPrice renders the price the way it appears in a prompt, e.g. "$20.00".
func FormatPrice(price float64) string {
	return "$" + RoundedPrice(price) + ".00"
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
