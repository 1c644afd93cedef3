package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/llm"
)

const (
	jokeSystem = "You are an assistant that is great at telling jokes"
	jokeUser   = "Tell a light-hearted joke for an audience of Data Scientists"
)

var jokeCmd = &cobra.Command{
	Use:   "joke",
	Short: "Ask a chat model for a joke",
	Long: `Send a fixed joke prompt to one or more chat backends and print each reply.
Useful as a smoke test for API keys and base URLs.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fatalf("Error loading config: %v", err)
		}
		providers, _ := cmd.Flags().GetStringSlice("provider")
		if len(providers) == 0 {
			providers = []string{cfg.LLM.Provider}
		}
		model, _ := cmd.Flags().GetString("model")
		temp, _ := cmd.Flags().GetFloat64("temperature")
		if !cmd.Flags().Changed("temperature") && cfg.LLM.Temperature > 0 {
			temp = cfg.LLM.Temperature
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		failed := false
		for _, provider := range providers {
			client, err := llm.NewClient(provider, cfg.LLM.BaseURL)
			if err != nil {
				fatalf("%v", err)
			}
			m := model
			if m == "" && provider == cfg.LLM.Provider {
				m = cfg.LLM.Model
			}
			if m == "" {
				m = llm.DefaultModel(provider)
			}
			reply, err := client.Chat(ctx, llm.Request{
				Model:       m,
				System:      jokeSystem,
				Messages:    []llm.Message{{Role: "user", Content: jokeUser}},
				Temperature: temp,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error from %s: %v\n", m, err)
				failed = true
				continue
			}
			if len(providers) > 1 {
				fmt.Printf("== %s ==\n", m)
			}
			fmt.Println(reply)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	jokeCmd.Flags().StringSlice("provider", nil, "Providers to ask: openai, anthropic, ollama (default from config)")
	jokeCmd.Flags().String("model", "", "Model name (default per provider)")
	jokeCmd.Flags().Float64("temperature", 0.7, "Sampling temperature")
	rootCmd.AddCommand(jokeCmd)
}
