package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage configured categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured categories",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if len(cfg.Categories) == 0 {
			fmt.Println("No categories configured.")
			return
		}

		fmt.Println("Categories:")
		for _, name := range cfg.Categories {
			fmt.Printf("- %s (%s)\n", name, sourceLabel(cfg))
		}
	},
}

func sourceLabel(cfg *config.Config) string {
	if cfg.Dataset.LocalDir != "" {
		return cfg.Dataset.LocalDir
	}
	return cfg.Dataset.Repo + "@" + cfg.Dataset.Revision
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a category, e.g. Appliances or Tools_and_Home_Improvement",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if !config.AddCategory(cfg, name) {
			fmt.Printf("Category '%s' already exists.\n", name)
			os.Exit(1)
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Category '%s' added.\n", name)
	},
}

var categoryRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if !config.RemoveCategory(cfg, name) {
			fmt.Printf("Category '%s' not found.\n", name)
			os.Exit(1)
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Category '%s' removed.\n", name)
	},
}

func init() {
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRemoveCmd)
	rootCmd.AddCommand(categoryCmd)
}
