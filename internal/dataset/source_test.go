package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSourceFetch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "raw", "meta_Appliances.jsonl"), `{"title": "Kettle", "price": "10"}`+"\n")
	writeFile(t, filepath.Join(root, "raw", "meta_Appliances_Extra.jsonl"), `{"title": "Other", "price": "10"}`+"\n")
	writeFile(t, filepath.Join(root, "meta_Toys.jsonl"), `{"title": "Yo-yo", "price": "3"}`+"\n")

	src := &DirSource{Root: root}
	raws, err := src.Fetch(context.Background(), "Appliances")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(raws) != 1 || raws[0].Title != "Kettle" {
		t.Errorf("Unexpected records: %+v", raws)
	}

	raws, err = src.Fetch(context.Background(), "Toys")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(raws) != 1 || raws[0].Title != "Yo-yo" {
		t.Errorf("Unexpected records: %+v", raws)
	}
}

func TestDirSourceCustomPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Books", "part-1.jsonl"), `{"title": "A"}`+"\n")
	writeFile(t, filepath.Join(root, "Books", "part-2.jsonl"), `{"title": "B"}`+"\n")

	src := &DirSource{Root: root, Pattern: "{category}/part-*.jsonl"}
	raws, err := src.Fetch(context.Background(), "Books")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(raws) != 2 || raws[0].Title != "A" || raws[1].Title != "B" {
		t.Errorf("Expected shards in name order, got %+v", raws)
	}
}

func TestDirSourceMissingCategory(t *testing.T) {
	src := &DirSource{Root: t.TempDir()}
	if _, err := src.Fetch(context.Background(), "Nope"); err == nil {
		t.Error("Expected error for missing category")
	}
}

func TestStaticFetch(t *testing.T) {
	src := Static{"Toys": nil}
	if _, err := src.Fetch(context.Background(), "Toys"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := src.Fetch(context.Background(), "Books"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestEscapeMeta(t *testing.T) {
	if got := escapeMeta(`A*b?[c]{d}\`); got != `A\*b\?\[c\]\{d\}\\` {
		t.Errorf("escapeMeta = %q", got)
	}
	if got := escapeMeta("Appliances"); got != "Appliances" {
		t.Errorf("escapeMeta = %q", got)
	}
}

func TestDirSourceCategoryIsLiteral(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "meta_Toys_Extra.jsonl"), `{"title": "Other"}`+"\n")
	writeFile(t, filepath.Join(root, "meta_Kits[1].jsonl"), `{"title": "Kit"}`+"\n")

	src := &DirSource{Root: root}
	if _, err := src.Fetch(context.Background(), "Toys*"); err == nil {
		t.Error("Expected wildcard category to match nothing")
	}
	raws, err := src.Fetch(context.Background(), "Kits[1]")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(raws) != 1 || raws[0].Title != "Kit" {
		t.Errorf("Unexpected records: %+v", raws)
	}
}
