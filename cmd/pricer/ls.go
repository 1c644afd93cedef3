package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [category]",
	Short: "List stored categories or the items in one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fatalf("Error opening store: %v", err)
		}
		defer s.Close()

		if len(args) == 0 {
			st, err := s.GetStatus()
			if err != nil {
				fatalf("Error reading store: %v", err)
			}
			if len(st.Categories) == 0 {
				fmt.Println("No items. Run 'pricer curate <category>' first.")
				return
			}
			fmt.Println("Categories:")
			fmt.Println()
			for _, c := range st.Categories {
				fmt.Printf("  %s  (%d items)\n", c.Name, c.ItemCount)
			}
			return
		}

		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")
		full, _ := cmd.Flags().GetBool("full")
		test, _ := cmd.Flags().GetBool("test")

		items, err := s.ListItems(args[0], limit)
		if err != nil {
			fatalf("Error listing items: %v", err)
		}
		if len(items) == 0 {
			fmt.Fprintf(os.Stderr, "No items in category %s.\n", args[0])
			return
		}
		WriteItems(os.Stdout, items, format, full, test)
	},
}

func init() {
	lsCmd.Flags().IntP("limit", "n", 10, "Maximum items to list (0 = all)")
	lsCmd.Flags().String("format", "text", "Output format: text, json, jsonl, csv, xml")
	lsCmd.Flags().Bool("full", false, "Print full prompts instead of snippets")
	lsCmd.Flags().Bool("test", false, "Print test prompts (price removed)")
	rootCmd.AddCommand(lsCmd)
}
