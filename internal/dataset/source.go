package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/huggingface"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/logging"
)

// DefaultRepo is the Hub dataset holding the product metadata.
const DefaultRepo = "McAuley-Lab/Amazon-Reviews-2023"

// Source fetches the raw records of one product category.
type Source interface {
	Fetch(ctx context.Context, category string) ([]item.Raw, error)
}

// MetaFile is the repo-relative path of a category's metadata file.
func MetaFile(category string) string {
	return fmt.Sprintf("raw/meta_categories/meta_%s.jsonl", category)
}

// HubSource downloads category files from a Hugging Face dataset repo and
// caches them locally.
type HubSource struct {
	Repo     string
	Revision string
}

func (s *HubSource) Fetch(ctx context.Context, category string) ([]item.Raw, error) {
	repo := s.Repo
	if repo == "" {
		repo = DefaultRepo
	}
	path, err := huggingface.ResolveDatasetFile(ctx, repo, s.Revision, MetaFile(category))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", category, err)
	}
	return readFiles([]string{path})
}

// DirSource reads category files from a local directory. Pattern is a
// doublestar glob relative to Root in which "{category}" is replaced by the
// category name.
type DirSource struct {
	Root    string
	Pattern string
}

// DefaultPattern matches meta_<category>.jsonl at any depth under Root.
const DefaultPattern = "**/meta_{category}.jsonl"

func (s *DirSource) Fetch(ctx context.Context, category string) ([]item.Raw, error) {
	pattern := s.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	pattern = expandCategory(pattern, category)

	matches, err := doublestar.Glob(os.DirFS(s.Root), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files for category %s under %s (pattern %s)", category, s.Root, pattern)
	}
	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		paths = append(paths, filepath.Join(s.Root, filepath.FromSlash(m)))
	}
	return readFiles(paths)
}

func expandCategory(pattern, category string) string {
	return strings.ReplaceAll(pattern, "{category}", escapeMeta(category))
}

// escapeMeta backslash-escapes doublestar pattern metacharacters so a
// category name only ever matches itself.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func readFiles(paths []string) ([]item.Raw, error) {
	log := logging.New("dataset")
	var out []item.Raw
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		raws, skipped, err := ReadJSONL(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		if skipped > 0 {
			log.WithField("file", p).Debugf("Skipped %d undecodable lines", skipped)
		}
		out = append(out, raws...)
	}
	return out, nil
}

// Static serves records held in memory, keyed by category.
type Static map[string][]item.Raw

func (s Static) Fetch(ctx context.Context, category string) ([]item.Raw, error) {
	raws, ok := s[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %s", category)
	}
	return raws, nil
}
