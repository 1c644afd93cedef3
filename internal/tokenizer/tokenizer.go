package tokenizer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the BPE encoding used when no tokenizer is configured.
const DefaultEncoding = "cl100k_base"

// Tokenizer turns text into token ids and back. Implementations must be
// deterministic and safe for concurrent use: one instance is shared by every
// loader worker.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

var loaderOnce sync.Once

// Tiktoken wraps a tiktoken BPE encoding. Special tokens are never emitted.
type Tiktoken struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding from the BPE files embedded in the binary.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", encoding, err)
	}
	return &Tiktoken{name: encoding, enc: enc}, nil
}

func (t *Tiktoken) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *Tiktoken) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

func (t *Tiktoken) String() string { return t.name }

// Runes emits one token per Unicode code point.
type Runes struct{}

func (Runes) Encode(text string) []int {
	out := make([]int, 0, len(text))
	for _, r := range text {
		out = append(out, int(r))
	}
	return out
}

func (Runes) Decode(tokens []int) string {
	var b strings.Builder
	b.Grow(len(tokens))
	for _, t := range tokens {
		b.WriteRune(rune(t))
	}
	return b.String()
}

func (Runes) String() string { return "runes" }

// New resolves a tokenizer by name: "runes" or a tiktoken encoding
// (cl100k_base, p50k_base, r50k_base). Empty selects DefaultEncoding.
func New(name string) (Tokenizer, error) {
	switch strings.TrimSpace(name) {
	case "":
		return NewTiktoken(DefaultEncoding)
	case "runes":
		return Runes{}, nil
	default:
		return NewTiktoken(strings.TrimSpace(name))
	}
}
