package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/config"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/loader"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/store"
	"github.com/IshankReddy/LLM-Engineer-Course/internal/tokenizer"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server (stdio)",
	Long:  "Start the Model Context Protocol server. Exposes record curation and the item store over stdio.",
	RunE:  runMCPServer,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	tok, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	server := mcp.NewServer(&mcp.Implementation{Name: "pricer", Version: "1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "curate_record",
		Description: "Turn one raw product record into a price prompt, or report why it was rejected.",
	}, curateRecordTool(tok))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "test_prompt",
		Description: "Return the prompt of a raw product record with the price removed, as a model would see it.",
	}, testPromptTool(tok))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_items",
		Description: "List curated items from the store, optionally for one category.",
	}, listItemsTool(s))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show the item store: categories, item counts and average prices.",
	}, statusTool(s))

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

type recordArgs struct {
	Title       string   `json:"title" jsonschema:"Product title"`
	Price       string   `json:"price" jsonschema:"Price as it appears in the raw record, e.g. 19.99"`
	Description []string `json:"description,omitempty" jsonschema:"Description paragraphs"`
	Features    []string `json:"features,omitempty" jsonschema:"Feature bullet points"`
	Details     string   `json:"details,omitempty" jsonschema:"Details rendered as a dictionary string"`
	Category    string   `json:"category,omitempty" jsonschema:"Category to tag the item with"`
}

func (a recordArgs) curate(tok tokenizer.Tokenizer) (*item.Item, string) {
	price, ok := loader.ParsePrice(a.Price)
	if !ok {
		return nil, fmt.Sprintf("Rejected: price %q is missing, unparseable or outside $%.2f-$%.2f", a.Price, loader.MinPrice, loader.MaxPrice)
	}
	raw := item.Raw{
		Title:       a.Title,
		Price:       a.Price,
		Description: a.Description,
		Features:    a.Features,
		Details:     a.Details,
	}
	it := item.New(raw, price, tok)
	it.Category = a.Category
	if !it.Include {
		return nil, fmt.Sprintf("Rejected: %q has too little text after cleanup", a.Title)
	}
	return it, ""
}

func curateRecordTool(tok tokenizer.Tokenizer) func(context.Context, *mcp.CallToolRequest, recordArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args recordArgs) (*mcp.CallToolResult, any, error) {
		it, reason := args.curate(tok)
		if it == nil {
			return &mcp.CallToolResult{
				Content:           []mcp.Content{&mcp.TextContent{Text: reason}},
				StructuredContent: map[string]any{"include": false, "reason": reason},
			}, nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: it.Prompt}},
			StructuredContent: map[string]any{
				"include":     true,
				"title":       it.Title,
				"price":       it.Price,
				"category":    it.Category,
				"token_count": it.TokenCount,
				"prompt":      it.Prompt,
			},
		}, nil, nil
	}
}

func testPromptTool(tok tokenizer.Tokenizer) func(context.Context, *mcp.CallToolRequest, recordArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args recordArgs) (*mcp.CallToolResult, any, error) {
		it, reason := args.curate(tok)
		if it == nil {
			return errorResult("%s", reason), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: it.TestPrompt()}},
		}, nil, nil
	}
}

type listItemsArgs struct {
	Category string `json:"category,omitempty" jsonschema:"Only list items of this category"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of items (default 10)"`
	Test     bool   `json:"test,omitempty" jsonschema:"Return test prompts with the price removed"`
}

func listItemsTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, listItemsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args listItemsArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		items, err := s.ListItems(args.Category, limit)
		if err != nil {
			return errorResult("List failed: %v", err), nil, nil
		}
		var b strings.Builder
		if len(items) == 0 {
			b.WriteString("No items found")
		}
		structured := make([]map[string]any, len(items))
		for i, it := range items {
			prompt := it.Prompt
			if args.Test {
				prompt = it.TestPrompt()
			}
			fmt.Fprintf(&b, "%s [%s]\n", it.String(), it.Category)
			structured[i] = map[string]any{
				"title":       it.Title,
				"price":       it.Price,
				"category":    it.Category,
				"token_count": it.TokenCount,
				"prompt":      prompt,
			}
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: b.String()}},
			StructuredContent: map[string]any{"items": structured},
		}, nil, nil
	}
}

type statusArgs struct{}

func statusTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, statusArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args statusArgs) (*mcp.CallToolResult, any, error) {
		st, err := s.GetStatus()
		if err != nil {
			return errorResult("Status failed: %v", err), nil, nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Pricer Status\n\nStore: %s\nItems: %d\n\nCategories:\n", st.DBPath, st.ItemCount)
		if len(st.Categories) == 0 {
			b.WriteString("  (none)\n")
		}
		for _, c := range st.Categories {
			fmt.Fprintf(&b, "  - %s: %d items, avg $%.2f", c.Name, c.ItemCount, c.AveragePrice)
			if t, err := time.Parse(time.RFC3339, c.CuratedAt); err == nil {
				fmt.Fprintf(&b, " (curated %s)", t.Format("2006-01-02 15:04"))
			}
			b.WriteString("\n")
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: b.String()}},
			StructuredContent: st,
		}, nil, nil
	}
}
