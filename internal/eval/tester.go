package eval

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fatih/color"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
)

// DefaultSize is the number of items a Tester scores when Size is unset.
const DefaultSize = 250

// Predictor guesses an item's price.
type Predictor func(it *item.Item) float64

// Tier buckets a prediction by how far it is from the truth.
type Tier string

const (
	Green  Tier = "green"
	Orange Tier = "orange"
	Red    Tier = "red"
)

var tierColor = map[Tier]*color.Color{
	Green:  color.New(color.FgHiGreen),
	Orange: color.New(color.FgHiYellow),
	Red:    color.New(color.FgHiRed),
}

// ColorFor returns green when the error is under $40 or 20% of the truth,
// orange under $80 or 40%, red otherwise.
func ColorFor(err, truth float64) Tier {
	switch {
	case err < 40 || err/truth < 0.2:
		return Green
	case err < 80 || err/truth < 0.4:
		return Orange
	default:
		return Red
	}
}

// Result is the score of one prediction.
type Result struct {
	Title string
	Guess float64
	Truth float64
	Error float64
	SLE   float64
	Tier  Tier
}

// Report aggregates a run.
type Report struct {
	Title        string
	Size         int
	AverageError float64
	RMSLE        float64
	HitRate      float64
}

func (r Report) String() string {
	return fmt.Sprintf("%s Error=$%.2f RMSLE=%.2f Hits=%.1f%%", r.Title, r.AverageError, r.RMSLE, r.HitRate)
}

// Tester runs a predictor over the first Size items of Data.
type Tester struct {
	Predictor Predictor
	Data      []*item.Item
	Title     string
	Size      int
	Out       io.Writer

	Results []Result
}

func NewTester(p Predictor, data []*item.Item, title string) *Tester {
	if title == "" {
		title = "Predictor"
	}
	return &Tester{Predictor: p, Data: data, Title: title, Size: DefaultSize, Out: os.Stdout}
}

// RunDatapoint scores item i and prints a colour-coded line for it.
func (t *Tester) RunDatapoint(i int) Result {
	it := t.Data[i]
	guess := t.Predictor(it)
	truth := it.Price
	errAbs := math.Abs(guess - truth)
	// Negative guesses score as 0 on the log scale.
	logErr := math.Log(truth+1) - math.Log(math.Max(guess, 0)+1)
	res := Result{
		Title: shortTitle(it.Title),
		Guess: guess,
		Truth: truth,
		Error: errAbs,
		SLE:   logErr * logErr,
		Tier:  ColorFor(errAbs, truth),
	}
	t.Results = append(t.Results, res)

	if t.Out != nil {
		tierColor[res.Tier].Fprintf(t.Out, "%d: Guess: $%.2f Truth: $%.2f Error: $%.2f SLE: %.2f Item: %s\n",
			i+1, res.Guess, res.Truth, res.Error, res.SLE, res.Title)
	}
	return res
}

// Run scores the items and returns the aggregate report.
func (t *Tester) Run() Report {
	t.Results = t.Results[:0]
	for i := 0; i < t.size(); i++ {
		t.RunDatapoint(i)
	}
	return t.Report()
}

// Report aggregates the results collected so far.
func (t *Tester) Report() Report {
	r := Report{Title: t.Title, Size: len(t.Results)}
	if r.Size == 0 {
		return r
	}
	var sumErr, sumSLE float64
	hits := 0
	for _, res := range t.Results {
		sumErr += res.Error
		sumSLE += res.SLE
		if res.Tier == Green {
			hits++
		}
	}
	n := float64(r.Size)
	r.AverageError = sumErr / n
	r.RMSLE = math.Sqrt(sumSLE / n)
	r.HitRate = float64(hits) / n * 100
	return r
}

func (t *Tester) size() int {
	n := t.Size
	if n <= 0 {
		n = DefaultSize
	}
	if n > len(t.Data) {
		n = len(t.Data)
	}
	return n
}

// Test runs predictor over data with default settings.
func Test(p Predictor, data []*item.Item, title string) Report {
	t := NewTester(p, data, title)
	r := t.Run()
	if t.Out != nil {
		fmt.Fprintln(t.Out, r.String())
	}
	return r
}

func shortTitle(title string) string {
	r := []rune(title)
	if len(r) <= 40 {
		return title
	}
	return string(r[:40]) + "..."
}
