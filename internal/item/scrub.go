package item

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Removals are stripped verbatim from the details text before it joins the contents.
var Removals = []string{
	`"Batteries Included?": "No"`, `"Batteries Included?": "Yes"`,
	`"Batteries Required?": "No"`, `"Batteries Required?": "Yes"`,
	"By Manufacturer", "Item", "Date First", "Package", ":",
	"Number of", "Best Sellers", "Number", "Product ",
}

// Words this long that contain a digit are treated as part or model numbers.
const partNumberLen = 7

var punctuationRun = regexp.MustCompile(`[:\[\]"{}【】\s\v\p{Z}]+`)

// ScrubDetails removes the boilerplate in Removals, in order.
func ScrubDetails(details string) string {
	for _, r := range Removals {
		details = strings.ReplaceAll(details, r, "")
	}
	return details
}

// Scrub collapses brackets, quotes, colons and whitespace into single spaces,
// merges repeated commas and drops words that look like part numbers.
func Scrub(text string) string {
	text = strings.TrimSpace(punctuationRun.ReplaceAllString(text, " "))
	text = strings.ReplaceAll(text, " ,", ",")
	text = strings.ReplaceAll(text, ",,,", ",")
	text = strings.ReplaceAll(text, ",,", ",")

	words := strings.Split(text, " ")
	keep := words[:0]
	for _, w := range words {
		if isPartNumber(w) {
			continue
		}
		keep = append(keep, w)
	}
	return strings.Join(keep, " ")
}

func isPartNumber(word string) bool {
	if utf8.RuneCountInString(word) < partNumberLen {
		return false
	}
	return strings.IndexFunc(word, unicode.IsDigit) >= 0
}
