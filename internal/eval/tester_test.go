package eval

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		err, truth float64
		want       Tier
	}{
		{39, 1000, Green},
		{100, 600, Green},  // 16.7%
		{79, 100, Orange},  // under $80
		{150, 500, Orange}, // 30%
		{80, 150, Red},     // 53%
		{500, 1000, Red},   // 50%
		{40, 199, Orange},  // 20.1%
		{40, 201, Green},   // 19.9%
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColorFor(tt.err, tt.truth), "ColorFor(%v, %v)", tt.err, tt.truth)
	}
}

func items(prices ...float64) []*item.Item {
	out := make([]*item.Item, len(prices))
	for i, p := range prices {
		out[i] = &item.Item{Title: "Item", Price: p, Include: true}
	}
	return out
}

func TestTesterRun(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	data := items(100, 200, 50)
	guesses := map[float64]float64{100: 110, 200: 100, 50: 50}
	var out bytes.Buffer
	tester := NewTester(func(it *item.Item) float64 { return guesses[it.Price] }, data, "Lookup")
	tester.Out = &out

	r := tester.Run()
	require.Equal(t, 3, r.Size)
	require.Len(t, tester.Results, 3)

	assert.InDelta(t, (10.0+100.0+0.0)/3, r.AverageError, 1e-9)
	sle0 := math.Pow(math.Log(101)-math.Log(111), 2)
	sle1 := math.Pow(math.Log(201)-math.Log(101), 2)
	assert.InDelta(t, math.Sqrt((sle0+sle1)/3), r.RMSLE, 1e-9)
	assert.InDelta(t, 200.0/3, r.HitRate, 1e-9)
	assert.Equal(t, []Tier{Green, Red, Green}, []Tier{tester.Results[0].Tier, tester.Results[1].Tier, tester.Results[2].Tier})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "1: Guess: $110.00 Truth: $100.00 Error: $10.00")
	assert.Equal(t, "Lookup Error=$36.67 RMSLE=0.40 Hits=66.7%", r.String())
}

func TestTesterSizeClamp(t *testing.T) {
	tester := NewTester(func(*item.Item) float64 { return 1 }, items(5, 6), "")
	tester.Out = nil
	tester.Size = 10
	r := tester.Run()
	assert.Equal(t, 2, r.Size)
	assert.Equal(t, "Predictor", r.Title)

	tester.Size = 1
	assert.Equal(t, 1, tester.Run().Size, "rerun must reset results")
}

func TestShortTitle(t *testing.T) {
	assert.Equal(t, "short", shortTitle("short"))
	long := strings.Repeat("a", 45)
	assert.Equal(t, strings.Repeat("a", 40)+"...", shortTitle(long))
}

func TestWriteChart(t *testing.T) {
	tester := NewTester(func(it *item.Item) float64 { return it.Price * 2 }, items(10, 300), "Double")
	tester.Out = nil
	r := tester.Run()

	var svg bytes.Buffer
	require.NoError(t, tester.WriteChart(&svg, r.String()))
	s := svg.String()
	assert.True(t, strings.HasPrefix(s, "<svg"))
	assert.Equal(t, 2, strings.Count(s, "<circle"))
	assert.Contains(t, s, "Double Error=$")
	assert.Contains(t, s, `fill="red"`)
}

func TestTesterNegativeGuess(t *testing.T) {
	for _, guess := range []float64{-1, -5} {
		tester := NewTester(func(*item.Item) float64 { return guess }, items(10), "Negative")
		tester.Out = nil
		r := tester.Run()
		assert.InDelta(t, 10-guess, r.AverageError, 1e-9)
		assert.InDelta(t, math.Log(11), r.RMSLE, 1e-9, "guess %v", guess)
		assert.False(t, math.IsNaN(r.RMSLE) || math.IsInf(r.RMSLE, 0))
	}
}
