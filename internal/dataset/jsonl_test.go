package dataset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
)

func TestReadJSONL(t *testing.T) {
	input := strings.Join([]string{
		`{"title": "Kettle", "price": 19.99, "description": ["Boils water"], "features": ["1.7L"], "details": {"Brand": "Acme", "Batteries Required?": "No"}}`,
		``,
		`{"title": "Toaster", "price": null, "description": [], "features": [], "details": {}}`,
		`not json`,
		`{"title": "Mixer", "price": "None", "description": ["Mixes"], "features": [], "details": "{\"Color\": \"Red\"}"}`,
	}, "\n")

	raws, skipped, err := ReadJSONL(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSONL failed: %v", err)
	}
	if skipped != 1 {
		t.Errorf("Expected 1 skipped line, got %d", skipped)
	}
	want := []item.Raw{
		{
			Title:       "Kettle",
			Price:       "19.99",
			Description: []string{"Boils water"},
			Features:    []string{"1.7L"},
			Details:     `{"Brand": "Acme", "Batteries Required?": "No"}`,
		},
		{Title: "Toaster", Price: "", Description: []string{}, Features: []string{}, Details: "{}"},
		{Title: "Mixer", Price: "None", Description: []string{"Mixes"}, Features: []string{}, Details: `{"Color": "Red"}`},
	}
	if diff := cmp.Diff(want, raws); diff != "" {
		t.Errorf("ReadJSONL mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDetailsNested(t *testing.T) {
	raw := json.RawMessage(`{"Size":{"w":1.50,"h":2},"Tags":["a & b",true,null],"Brand":"Ünï"}`)
	got, err := RenderDetails(raw)
	if err != nil {
		t.Fatalf("RenderDetails failed: %v", err)
	}
	want := `{"Size": {"w": 1.50, "h": 2}, "Tags": ["a & b", true, null], "Brand": "\u00dcn\u00ef"}`
	if got != want {
		t.Errorf("RenderDetails() = %q, want %q", got, want)
	}
}

func TestRenderDetailsRemovalsMatch(t *testing.T) {
	got, err := RenderDetails(json.RawMessage(`{"Batteries Included?":"Yes"}`))
	if err != nil {
		t.Fatal(err)
	}
	if scrubbed := item.ScrubDetails(got); scrubbed != "{}" {
		t.Errorf("Expected battery flag removed, got %q", scrubbed)
	}
}

func TestRenderDetailsEscapesNonASCII(t *testing.T) {
	got, err := RenderDetails(json.RawMessage(`{"Größe":"【XL】 😀","Note":"a\tb\u007f"}`))
	if err != nil {
		t.Fatalf("RenderDetails failed: %v", err)
	}
	want := `{"Gr\u00f6\u00dfe": "\u3010XL\u3011 \ud83d\ude00", "Note": "a\tb\u007f"}`
	if got != want {
		t.Errorf("RenderDetails() = %q, want %q", got, want)
	}
}
