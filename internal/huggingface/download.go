package huggingface

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRevision is the default branch to resolve files from.
const DefaultRevision = "main"

// BaseURL is the Hub endpoint. Overridable for mirrors and tests.
var BaseURL = "https://huggingface.co"

// DatasetFileURL returns the direct download URL for a file in a Hugging Face dataset repo.
// repo is e.g. "McAuley-Lab/Amazon-Reviews-2023", file e.g. "raw/meta_categories/meta_Appliances.jsonl".
func DatasetFileURL(repo, revision, file string) string {
	if revision == "" {
		revision = DefaultRevision
	}
	repo = strings.TrimPrefix(repo, BaseURL+"/")
	repo = strings.TrimPrefix(repo, "datasets/")
	return fmt.Sprintf("%s/datasets/%s/resolve/%s/%s", strings.TrimRight(BaseURL, "/"), repo, revision, file)
}

// CacheDir returns the directory where dataset files are cached
// (PRICER_DATA_CACHE, else $XDG_CACHE_HOME/pricer/datasets or ~/.cache/pricer/datasets).
func CacheDir() (string, error) {
	if d := os.Getenv("PRICER_DATA_CACHE"); d != "" {
		return d, nil
	}
	cache := os.Getenv("XDG_CACHE_HOME")
	if cache == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cache = filepath.Join(home, ".cache")
	}
	return filepath.Join(cache, "pricer", "datasets"), nil
}

// LocalPath returns the path where a repo/revision/file would be cached.
func LocalPath(repo, revision, file string) (string, error) {
	base, err := CacheDir()
	if err != nil {
		return "", err
	}
	if revision == "" {
		revision = DefaultRevision
	}
	safeRepo := strings.ReplaceAll(repo, "/", "_")
	return filepath.Join(base, safeRepo, revision, filepath.FromSlash(file)), nil
}

// Download fetches url to destPath. Creates parent dirs and writes through a
// temp file so an interrupted download never leaves a truncated cache entry.
func Download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "pricer/1.0")
	if token := os.Getenv("HF_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", url, resp.Status)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	tmp := destPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, destPath)
}

// ResolveDatasetFile returns a local path for a dataset file, downloading it
// from the Hub into the cache on first use.
func ResolveDatasetFile(ctx context.Context, repo, revision, file string) (string, error) {
	dest, err := LocalPath(repo, revision, file)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}
	url := DatasetFileURL(repo, revision, file)
	if err := Download(ctx, url, dest); err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	return dest, nil
}
