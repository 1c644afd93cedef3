package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
)

// line is the subset of an Amazon Reviews 2023 metadata row the curation uses.
type line struct {
	Title       string          `json:"title"`
	Price       json.RawMessage `json:"price"`
	Description []string        `json:"description"`
	Features    []string        `json:"features"`
	Details     json.RawMessage `json:"details"`
}

// ReadJSONL decodes one raw record per line. Lines that are not valid JSON
// objects are skipped and counted; a read error aborts.
func ReadJSONL(r io.Reader) ([]item.Raw, int, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	var out []item.Raw
	skipped := 0
	for {
		data, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(data)) > 0 {
			raw, decErr := decodeLine(data)
			if decErr != nil {
				skipped++
			} else {
				out = append(out, raw)
			}
		}
		if errors.Is(err, io.EOF) {
			return out, skipped, nil
		}
		if err != nil {
			return out, skipped, err
		}
	}
}

func decodeLine(data []byte) (item.Raw, error) {
	var l line
	if err := json.Unmarshal(data, &l); err != nil {
		return item.Raw{}, err
	}
	details, err := RenderDetails(l.Details)
	if err != nil {
		return item.Raw{}, fmt.Errorf("details: %w", err)
	}
	return item.Raw{
		Title:       l.Title,
		Price:       priceText(l.Price),
		Description: l.Description,
		Features:    l.Features,
		Details:     details,
	}, nil
}

// priceText keeps the source's price as text: null becomes empty, strings are
// unquoted and numbers keep their literal form.
func priceText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// RenderDetails turns the details value into text. Strings pass through;
// objects are re-rendered in source key order with ", " and ": " separators,
// the layout the boilerplate removals are written against. null renders as "".
func RenderDetails(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var b strings.Builder
	if err := renderValue(dec, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderValue(dec *json.Decoder, b *strings.Builder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			b.WriteByte('{')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				key, err := dec.Token()
				if err != nil {
					return err
				}
				writeString(b, fmt.Sprint(key))
				b.WriteString(": ")
				if err := renderValue(dec, b); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			b.WriteByte('}')
		case '[':
			b.WriteByte('[')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				if err := renderValue(dec, b); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			b.WriteByte(']')
		default:
			return fmt.Errorf("unexpected delimiter %v", v)
		}
	case string:
		writeString(b, v)
	case json.Number:
		b.WriteString(v.String())
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case nil:
		b.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}
	return nil
}

// writeString quotes s with every non-printable or non-ASCII rune escaped as
// \uXXXX, matching Python's json.dumps defaults.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				b.WriteRune(r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(b, `\u%04x\u%04x`, r1, r2)
			default:
				fmt.Fprintf(b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
}
