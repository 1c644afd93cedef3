package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
)

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return strings.ReplaceAll(s, "'", "&apos;")
}

// WriteItems writes items in the requested format. With full unset prompts
// are shortened to a snippet; with test set the test prompt replaces the prompt.
func WriteItems(w io.Writer, items []*item.Item, format string, full, test bool) {
	text := func(it *item.Item) string {
		p := it.Prompt
		if test {
			p = it.TestPrompt()
		}
		if !full {
			p = truncateSnippet(p, 300)
		}
		return p
	}
	switch format {
	case "json":
		out := make([]map[string]interface{}, 0, len(items))
		for _, it := range items {
			out = append(out, map[string]interface{}{
				"title":       it.Title,
				"price":       it.Price,
				"category":    it.Category,
				"token_count": it.TokenCount,
				"prompt":      text(it),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	case "jsonl":
		enc := json.NewEncoder(w)
		for _, it := range items {
			_ = enc.Encode(map[string]interface{}{"text": text(it), "price": it.Price})
		}
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"category", "title", "price", "token_count", "prompt"})
		for _, it := range items {
			_ = cw.Write([]string{
				it.Category,
				it.Title,
				strconv.FormatFloat(it.Price, 'f', 2, 64),
				strconv.Itoa(it.TokenCount),
				text(it),
			})
		}
		cw.Flush()
	case "xml":
		fmt.Fprintln(w, `<?xml version="1.0" encoding="UTF-8"?>`)
		fmt.Fprintln(w, "<items>")
		for _, it := range items {
			fmt.Fprintln(w, "  <item>")
			fmt.Fprintf(w, "    <category>%s</category>\n", escapeXML(it.Category))
			fmt.Fprintf(w, "    <title>%s</title>\n", escapeXML(it.Title))
			fmt.Fprintf(w, "    <price>%.2f</price>\n", it.Price)
			fmt.Fprintf(w, "    <tokens>%d</tokens>\n", it.TokenCount)
			fmt.Fprintf(w, "    <prompt>%s</prompt>\n", escapeXML(text(it)))
			fmt.Fprintln(w, "  </item>")
		}
		fmt.Fprintln(w, "</items>")
	default:
		for _, it := range items {
			fmt.Fprintln(w, it.String())
			fmt.Fprintf(w, "Category: %s  Tokens: %d\n\n", it.Category, it.TokenCount)
			fmt.Fprintln(w, text(it))
			fmt.Fprintln(w)
		}
	}
}

func truncateSnippet(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
