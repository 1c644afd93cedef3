package eval

import (
	"fmt"
	"html"
	"io"
	"math"
)

const (
	chartWidth  = 1200
	chartHeight = 800
	chartMargin = 60
)

var tierFill = map[Tier]string{
	Green:  "green",
	Orange: "orange",
	Red:    "red",
}

// WriteChart renders a ground-truth vs estimate scatter of the collected
// results as SVG, with the ideal y=x line for reference.
func (t *Tester) WriteChart(w io.Writer, title string) error {
	maxVal := 0.0
	for _, r := range t.Results {
		maxVal = math.Max(maxVal, math.Max(r.Truth, r.Guess))
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	plotW := float64(chartWidth - 2*chartMargin)
	plotH := float64(chartHeight - 2*chartMargin)
	x := func(v float64) float64 { return chartMargin + v/maxVal*plotW }
	y := func(v float64) float64 { return chartHeight - chartMargin - v/maxVal*plotH }

	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		chartWidth, chartHeight, chartWidth, chartHeight)
	printf(`<rect width="100%%" height="100%%" fill="white"/>` + "\n")
	printf(`<text x="%d" y="%d" font-family="sans-serif" font-size="18" text-anchor="middle">%s</text>`+"\n",
		chartWidth/2, chartMargin/2, html.EscapeString(title))
	printf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", x(0), y(0), x(maxVal), y(0))
	printf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", x(0), y(0), x(0), y(maxVal))
	printf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="deepskyblue" stroke-width="2" stroke-opacity="0.6"/>`+"\n",
		x(0), y(0), x(maxVal), y(maxVal))
	for _, r := range t.Results {
		printf(`<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>`+"\n", x(r.Truth), y(r.Guess), tierFill[r.Tier])
	}
	printf(`<text x="%d" y="%d" font-family="sans-serif" font-size="14" text-anchor="middle">Ground Truth</text>`+"\n",
		chartWidth/2, chartHeight-chartMargin/3)
	printf(`<text x="%d" y="%d" font-family="sans-serif" font-size="14" text-anchor="middle" transform="rotate(-90 %d %d)">Model Estimate</text>`+"\n",
		chartMargin/3, chartHeight/2, chartMargin/3, chartHeight/2)
	printf("</svg>\n")
	return err
}
