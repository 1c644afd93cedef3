package loader

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/dataset"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/logging"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/tokenizer"
)

const (
	ChunkSize      = 1000
	DefaultWorkers = 8
	MinPrice       = 0.5
	MaxPrice       = 999.49
)

// ErrWorkerPanic wraps a panic raised while converting a chunk.
var ErrWorkerPanic = errors.New("loader worker panicked")

// Loader turns one category of raw catalog records into curated items.
type Loader struct {
	Name      string
	Source    dataset.Source
	Tokenizer tokenizer.Tokenizer
	Workers   int
	Log       *logrus.Entry
}

// New returns a Loader for category name with the default worker count.
func New(name string, src dataset.Source, tok tokenizer.Tokenizer) *Loader {
	return &Loader{
		Name:      name,
		Source:    src,
		Tokenizer: tok,
		Workers:   DefaultWorkers,
		Log:       logging.New("loader"),
	}
}

// ParsePrice reads a raw price. ok is false for empty, non-numeric, hex,
// NaN and out-of-range prices.
func ParsePrice(s string) (price float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if !(price >= MinPrice && price <= MaxPrice) {
		return 0, false
	}
	return price, true
}

// FromDatapoint converts one raw record, returning nil when the price is
// unusable or the item is rejected.
func (l *Loader) FromDatapoint(raw item.Raw) *item.Item {
	price, ok := ParsePrice(raw.Price)
	if !ok {
		return nil
	}
	it := item.New(raw, price, l.Tokenizer)
	if !it.Include {
		return nil
	}
	return it
}

// FromChunk converts a chunk, keeping only included items.
func (l *Loader) FromChunk(chunk []item.Raw) []*item.Item {
	var batch []*item.Item
	for _, raw := range chunk {
		if it := l.FromDatapoint(raw); it != nil {
			batch = append(batch, it)
		}
	}
	return batch
}

// Load fetches the category and curates it in parallel.
func (l *Loader) Load(ctx context.Context) ([]*item.Item, error) {
	log := l.logger()
	start := time.Now()
	log.Infof("Loading dataset %s", l.Name)

	raws, err := l.Source.Fetch(ctx, l.Name)
	if err != nil {
		return nil, err
	}
	results, err := l.LoadInParallel(ctx, raws)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"raw":      len(raws),
		"items":    len(results),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Infof("Completed %s with %d datapoints in %.1f mins", l.Name, len(results), time.Since(start).Minutes())
	return results, nil
}

// LoadInParallel maps every chunk of raws on a bounded worker pool, then tags
// the accepted items with the loader's category.
func (l *Loader) LoadInParallel(ctx context.Context, raws []item.Raw) ([]*item.Item, error) {
	if l.Tokenizer == nil {
		return nil, fmt.Errorf("loader %s: no tokenizer", l.Name)
	}
	chunks := Chunks(raws, ChunkSize)
	batches := make([][]*item.Item, len(chunks))

	workers := l.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, chunk := range chunks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: chunk %d: %v", ErrWorkerPanic, i, r)
				}
			}()
			batches[i] = l.FromChunk(chunk)
			l.logger().Debugf("Chunk %d/%d: %d items", i+1, len(chunks), len(batches[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []*item.Item
	for _, b := range batches {
		results = append(results, b...)
	}
	for _, it := range results {
		it.Category = l.Name
	}
	return results, nil
}

func (l *Loader) logger() *logrus.Entry {
	if l.Log != nil {
		return l.Log
	}
	return logging.New("loader")
}
