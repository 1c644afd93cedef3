package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/eval"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/llm"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/logging"
)

const splitSeed = 42

var evalCmd = &cobra.Command{
	Use:   "eval [category]",
	Short: "Score a price predictor against stored items",
	Long: `Shuffle the stored items with a fixed seed, hold out the first --size of them
as the test set and score the chosen predictor on it. The constant baseline
is fitted on the remaining items.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fatalf("Error loading config: %v", err)
		}
		category := ""
		if len(args) > 0 {
			category = args[0]
		}
		size, _ := cmd.Flags().GetInt("size")
		if size <= 0 {
			size = cfg.EvalSize
		}
		kind, _ := cmd.Flags().GetString("predictor")
		chartPath, _ := cmd.Flags().GetString("chart")

		s, err := openStore()
		if err != nil {
			fatalf("Error opening store: %v", err)
		}
		defer s.Close()

		items, err := s.ListItems(category, 0)
		if err != nil {
			fatalf("Error reading items: %v", err)
		}
		if len(items) == 0 {
			fatalf("No stored items. Run 'pricer curate' first.")
		}
		test, train := splitItems(items, size)

		p, title, err := predictorFor(cmd, cfg, kind, train)
		if err != nil {
			fatalf("%v", err)
		}

		t := eval.NewTester(p, test, title)
		t.Size = size
		r := t.Run()
		fmt.Println(r.String())

		if chartPath != "" {
			f, err := os.Create(chartPath)
			if err != nil {
				fatalf("Error creating chart: %v", err)
			}
			defer f.Close()
			if err := t.WriteChart(f, r.String()); err != nil {
				fatalf("Error writing chart: %v", err)
			}
			fmt.Fprintf(os.Stderr, "Chart written to %s\n", chartPath)
		}
	},
}

// splitItems shuffles a copy of items and returns the first n as the test set
// and the rest as training data. When nothing is left for training the test
// set doubles as training data.
func splitItems(items []*item.Item, n int) (test, train []*item.Item) {
	shuffled := append([]*item.Item(nil), items...)
	r := rand.New(rand.NewSource(splitSeed))
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if n <= 0 || n > len(shuffled) {
		n = len(shuffled)
	}
	test, train = shuffled[:n], shuffled[n:]
	if len(train) == 0 {
		train = test
	}
	return test, train
}

func predictorFor(cmd *cobra.Command, cfg *config.Config, kind string, train []*item.Item) (eval.Predictor, string, error) {
	switch kind {
	case "constant":
		return eval.ConstantPredictor(train), "Average Price", nil
	case "random":
		return eval.RandomPredictor(splitSeed), "Random Pricer", nil
	case "llm":
		provider, _ := cmd.Flags().GetString("provider")
		if provider == "" {
			provider = cfg.LLM.Provider
		}
		model, _ := cmd.Flags().GetString("model")
		if model == "" {
			model = cfg.LLM.Model
		}
		if model == "" {
			model = llm.DefaultModel(provider)
		}
		client, err := llm.NewClient(provider, cfg.LLM.BaseURL)
		if err != nil {
			return nil, "", err
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")
		return eval.LLMPredictor(client, model, timeout, logging.New("eval")), model, nil
	default:
		return nil, "", fmt.Errorf("unknown predictor %q (want constant, random or llm)", kind)
	}
}

func init() {
	evalCmd.Flags().String("predictor", "constant", "Predictor: constant, random or llm")
	evalCmd.Flags().IntP("size", "n", 0, "Number of test items (default from config)")
	evalCmd.Flags().String("chart", "", "Write a truth vs estimate SVG scatter to this path")
	evalCmd.Flags().String("provider", "", "LLM provider for --predictor llm: openai, anthropic or ollama")
	evalCmd.Flags().String("model", "", "LLM model for --predictor llm")
	evalCmd.Flags().Duration("timeout", 30*time.Second, "Per-item LLM timeout")
	rootCmd.AddCommand(evalCmd)
}
