package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/dataset"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/logging"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pricer",
	Short: "Curate and evaluate product price datasets",
	Long: `Curate product metadata into fixed-shape price-prediction prompts,
store them, and score price predictors against them.`,
}

func getProfile() string {
	name, _ := rootCmd.PersistentFlags().GetString("profile")
	if name == "" {
		return "pricer"
	}
	return name
}

func getStorePath() (string, error) {
	if path, _ := rootCmd.PersistentFlags().GetString("db"); path != "" {
		return path, nil
	}
	return store.GetDefaultDbPath(getProfile())
}

func openStore() (*store.Store, error) {
	path, err := getStorePath()
	if err != nil {
		return nil, err
	}
	return store.NewStore(path)
}

// sourceFor picks a local directory source when one is configured, else the Hub.
func sourceFor(cfg *config.Config) dataset.Source {
	if cfg.Dataset.LocalDir != "" {
		return &dataset.DirSource{Root: cfg.Dataset.LocalDir, Pattern: cfg.Dataset.Pattern}
	}
	return &dataset.HubSource{Repo: cfg.Dataset.Repo, Revision: cfg.Dataset.Revision}
}

func initRoot() {
	config.CurrentProfile = getProfile()
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	logging.Init(verbose, nil)
}

func fatalf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.RedString(format, args...))
	os.Exit(1)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		initRoot()
	}
	rootCmd.PersistentFlags().String("profile", "", "Use named profile for config and store (default: pricer)")
	rootCmd.PersistentFlags().String("db", "", "Path to the item store (overrides profile)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
