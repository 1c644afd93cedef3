package eval

import (
	"context"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/llm"
)

const priceSystemMessage = "You estimate prices of items. Reply only with the price, no explanation"

var numberPattern = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)

// ParsePrice extracts the first number from a model reply, ignoring "$" and
// thousands separators. It returns 0 when the reply holds no number.
func ParsePrice(s string) float64 {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// PriceMessages builds the chat for asking a model to price it: the test
// prompt without the rounding hint or price prefix, and an assistant turn
// primed with the prefix.
func PriceMessages(it *item.Item) []llm.Message {
	user := it.TestPrompt()
	user = strings.ReplaceAll(user, " to the nearest dollar", "")
	user = strings.ReplaceAll(user, "\n\n"+item.Prefix, "")
	return []llm.Message{
		{Role: "user", Content: user},
		{Role: "assistant", Content: item.Prefix},
	}
}

// LLMPredictor asks a chat model for each price. A failed call is logged and
// scores as a guess of 0.
func LLMPredictor(client llm.LLM, model string, timeout time.Duration, log *logrus.Entry) Predictor {
	return func(it *item.Item) float64 {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		reply, err := client.Chat(ctx, llm.Request{
			Model:     model,
			System:    priceSystemMessage,
			Messages:  PriceMessages(it),
			MaxTokens: 5,
		})
		if err != nil {
			if log != nil {
				log.WithField("item", it.Title).Warnf("Prediction failed: %v", err)
			}
			return 0
		}
		return ParsePrice(reply)
	}
}

// ConstantPredictor always guesses the mean price of training.
func ConstantPredictor(training []*item.Item) Predictor {
	var sum float64
	for _, it := range training {
		sum += it.Price
	}
	mean := 0.0
	if len(training) > 0 {
		mean = sum / float64(len(training))
	}
	return func(*item.Item) float64 { return mean }
}

// RandomPredictor guesses uniformly between 1 and 1000 from a fixed seed.
func RandomPredictor(seed int64) Predictor {
	r := rand.New(rand.NewSource(seed))
	return func(*item.Item) float64 { return float64(r.Intn(1000) + 1) }
}
