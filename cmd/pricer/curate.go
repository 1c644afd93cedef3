package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/dataset"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/loader"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/tokenizer"
)

var curateCmd = &cobra.Command{
	Use:   "curate [category...]",
	Short: "Curate categories into the item store",
	Long: `Fetch the raw metadata for each category, keep records with a usable price
and enough text, build their prompts in parallel, and store the result.
Without arguments the categories from the config file are curated.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fatalf("Error loading config: %v", err)
		}
		categories := args
		if len(categories) == 0 {
			categories = cfg.Categories
		}
		if len(categories) == 0 {
			fatalf("No categories. Pass one or run 'pricer category add <name>'.")
		}

		workers, _ := cmd.Flags().GetInt("workers")
		if workers <= 0 {
			workers = cfg.Workers
		}
		tokName, _ := cmd.Flags().GetString("tokenizer")
		if tokName == "" {
			tokName = cfg.Tokenizer
		}
		var src dataset.Source = sourceFor(cfg)
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			src = &dataset.DirSource{Root: dir, Pattern: cfg.Dataset.Pattern}
		}

		tok, err := tokenizer.New(tokName)
		if err != nil {
			fatalf("Error loading tokenizer: %v", err)
		}

		s, err := openStore()
		if err != nil {
			fatalf("Error opening store: %v", err)
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		total := 0
		start := time.Now()
		for _, category := range categories {
			l := loader.New(category, src, tok)
			l.Workers = workers
			items, err := l.Load(ctx)
			if err != nil {
				fatalf("Error curating %s: %v", category, err)
			}
			n, err := s.ReplaceCategory(category, items, time.Now())
			if err != nil {
				fatalf("Error storing %s: %v", category, err)
			}
			total += n
			fmt.Printf("%s: %s items\n", category, color.GreenString("%d", n))
		}
		fmt.Printf("Done. Stored %d items from %d categories in %.1fs\n", total, len(categories), time.Since(start).Seconds())
	},
}

func init() {
	curateCmd.Flags().IntP("workers", "w", 0, "Parallel workers (default from config)")
	curateCmd.Flags().String("tokenizer", "", "Tokenizer: cl100k_base, p50k_base, r50k_base or runes")
	curateCmd.Flags().String("dir", "", "Read meta_<category>.jsonl files from this directory instead of the Hub")
	rootCmd.AddCommand(curateCmd)
}
