package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/store"
)

func writeCategory(t *testing.T, dir, category string, n int) {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		row := map[string]any{
			"title":       fmt.Sprintf("Countertop appliance model %d", i),
			"price":       fmt.Sprintf("%d.49", 10+i*10),
			"description": []string{strings.Repeat("Compact design fits any kitchen and cleans up in seconds. ", 5)},
			"features":    []string{"Dishwasher safe parts", "Two year warranty"},
			"details":     map[string]string{"Brand": "Acme"},
		}
		data, err := json.Marshal(row)
		if err != nil {
			t.Fatal(err)
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	path := filepath.Join(dir, "meta_"+category+".jsonl")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
}

func runCLI(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pricer %s: %v", strings.Join(args, " "), err)
	}
}

func TestCurateAndEvalCommands(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("PRICER_CONFIG_DIR", filepath.Join(tmp, "config"))
	dataDir := filepath.Join(tmp, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeCategory(t, dataDir, "Appliances", 20)
	dbPath := filepath.Join(tmp, "items.sqlite")

	runCLI(t, "curate", "Appliances", "--dir", dataDir, "--tokenizer", "runes", "--workers", "2", "--db", dbPath)

	s, err := store.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	items, err := s.ListItems("Appliances", 0)
	s.Close()
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 20 {
		t.Fatalf("Expected 20 curated items, got %d", len(items))
	}

	chart := filepath.Join(tmp, "chart.svg")
	runCLI(t, "eval", "Appliances", "--predictor", "constant", "--size", "5", "--chart", chart, "--db", dbPath)

	svg, err := os.ReadFile(chart)
	if err != nil {
		t.Fatalf("Expected chart file: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") || strings.Count(string(svg), "<circle") != 5 {
		t.Errorf("Unexpected chart:\n%s", svg)
	}

	runCLI(t, "category", "add", "Toys")
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	found := false
	for _, c := range cfg.Categories {
		found = found || c == "Toys"
	}
	if !found {
		t.Errorf("Expected Toys in %v", cfg.Categories)
	}
}
