package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store status and configured categories",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fatalf("Error opening store: %v", err)
		}
		defer s.Close()

		st, err := s.GetStatus()
		if err != nil {
			fatalf("Error getting status: %v", err)
		}

		var size int64
		if fi, err := os.Stat(st.DBPath); err == nil {
			size = fi.Size()
		}

		fmt.Println("Pricer Status")
		fmt.Println()
		fmt.Println("Store:", st.DBPath)
		fmt.Println("Size:", formatBytes(size))
		fmt.Printf("Items: %d\n\n", st.ItemCount)

		cfg, _ := config.LoadConfig()
		fmt.Println("Categories")
		if (cfg == nil || len(cfg.Categories) == 0) && len(st.Categories) == 0 {
			fmt.Println("  No categories. Run 'pricer category add <name>' or 'pricer curate <name>'.")
			return
		}
		seen := make(map[string]bool)
		for _, c := range st.Categories {
			seen[c.Name] = true
			fmt.Printf("  %s\n", c.Name)
			fmt.Printf("    Items:   %d (avg $%.2f, %.0f tokens)", c.ItemCount, c.AveragePrice, c.AverageTokens)
			if ago := formatTimeAgo(c.CuratedAt); ago != "" {
				fmt.Printf(" (curated %s)", ago)
			}
			fmt.Println()
		}
		if cfg != nil {
			for _, name := range cfg.Categories {
				if !seen[name] {
					fmt.Printf("  %s\n    Items:   not curated\n", name)
				}
			}
		}
	},
}

func formatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	if n < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	if n < 1024*1024*1024 {
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
	return fmt.Sprintf("%.1f GB", float64(n)/(1024*1024*1024))
}

func formatTimeAgo(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	d := time.Since(t)
	if d < time.Minute {
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
