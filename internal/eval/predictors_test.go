package eval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/llm"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/logging"
)

func TestParsePrice(t *testing.T) {
	tests := map[string]float64{
		"$1,299.99":        1299.99,
		"Price is $42":     42,
		"about 19.5 bucks": 19.5,
		".75":              0.75,
		"no idea":          0,
		"-3":               3,
		"+7.5":             7.5,
	}
	for in, want := range tests {
		assert.InDelta(t, want, ParsePrice(in), 1e-9, "ParsePrice(%q)", in)
	}
}

type fakeLLM struct {
	reply string
	err   error
	got   llm.Request
}

func (f *fakeLLM) Chat(ctx context.Context, req llm.Request) (string, error) {
	f.got = req
	return f.reply, f.err
}

func promptItem() *item.Item {
	return &item.Item{
		Title:   "Kettle",
		Price:   20,
		Prompt:  item.Question + "\n\nKettle\nBoils water\n\n" + item.Prefix + "20.00",
		Include: true,
	}
}

func TestPriceMessages(t *testing.T) {
	msgs := PriceMessages(promptItem())
	require.Len(t, msgs, 2)
	assert.Equal(t, "How much does this cost?\n\nKettle\nBoils water", msgs[0].Content)
	assert.Equal(t, llm.Message{Role: "assistant", Content: item.Prefix}, msgs[1])
}

func TestLLMPredictor(t *testing.T) {
	fake := &fakeLLM{reply: "24.99"}
	p := LLMPredictor(fake, "gpt-4o-mini", 0, logging.Discard())
	assert.InDelta(t, 24.99, p(promptItem()), 1e-9)
	assert.Equal(t, "gpt-4o-mini", fake.got.Model)
	assert.Equal(t, priceSystemMessage, fake.got.System)
	assert.False(t, strings.Contains(fake.got.Messages[0].Content, "20.00"), "prompt must not leak the price")

	fake.err = errors.New("rate limited")
	assert.Equal(t, 0.0, p(promptItem()))
}

func TestBaselines(t *testing.T) {
	c := ConstantPredictor(items(10, 20, 30))
	assert.Equal(t, 20.0, c(nil))
	assert.Equal(t, 0.0, ConstantPredictor(nil)(nil))

	a, b := RandomPredictor(42), RandomPredictor(42)
	for i := 0; i < 5; i++ {
		g := a(nil)
		assert.Equal(t, g, b(nil))
		assert.True(t, g >= 1 && g <= 1000)
	}
}
