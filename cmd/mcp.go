package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"wrench/internal/kb"
	"wrench/internal/parts"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing car repair tools",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.kb.Load(cmd.Context()); err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	s := mcpserver.NewMCPServer("wrench", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(searchKnowledgeTool(), makeSearchKnowledgeHandler(a))
	s.AddTool(webSearchTool(), makeWebSearchHandler(a))
	s.AddTool(identifyPartTool(), makeIdentifyPartHandler())

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func searchKnowledgeTool() mcp.Tool {
	return mcp.NewTool("search_knowledge",
		mcp.WithDescription("Search the car repair knowledge base by vector similarity. Returns the most relevant repair guidance chunks with their metadata."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language question about a car part or problem"),
		),
		mcp.WithNumber("k",
			mcp.Description("Maximum number of chunks to return (default 3)"),
		),
	)
}

func webSearchTool() mcp.Tool {
	return mcp.NewTool("web_search",
		mcp.WithDescription("Search the internet for car repair information. Falls back to simulated results when no live provider is configured."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{
			ReadOnlyHint:    mcp.ToBoolPtr(true),
			DestructiveHint: mcp.ToBoolPtr(false),
			IdempotentHint:  mcp.ToBoolPtr(false),
			OpenWorldHint:   mcp.ToBoolPtr(true),
		}),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query; a car repair context prefix is added automatically"),
		),
		mcp.WithNumber("n",
			mcp.Description("Maximum number of results to return (default 3)"),
		),
	)
}

func identifyPartTool() mcp.Tool {
	return mcp.NewTool("identify_part",
		mcp.WithDescription("Identify a car part from an image file on disk. Returns the part name, category, confidence, and common issues."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the image file"),
		),
	)
}

// --- Handler factories ---

func makeSearchKnowledgeHandler(a *app) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		k := req.GetInt("k", kb.DefaultRetrievalK)
		if k <= 0 {
			k = kb.DefaultRetrievalK
		}

		chunks, err := a.kb.RelevantDocuments(ctx, query, k)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		return mcp.NewToolResultText(formatKnowledgeResults(query, chunks)), nil
	}
}

func makeWebSearchHandler(a *app) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		n := req.GetInt("n", 0)

		results := a.searcher.Search(ctx, query, n)

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Search results for %q (%d)\n\n", query, len(results))
		for i, r := range results {
			fmt.Fprintf(&sb, "### Result %d: %s\n\n%s\n\n<%s>\n\n", i+1, r.Title, r.Snippet, r.URL)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeIdentifyPartHandler() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read image failed: %v", err)), nil
		}

		part := parts.Identify(data)

		var sb strings.Builder
		fmt.Fprintf(&sb, "## %s\n\n**Category:** %s  \n**Confidence:** %.0f%%\n\nCommon issues:\n", part.Name, part.Category, part.Confidence*100)
		for _, issue := range part.CommonIssues {
			fmt.Fprintf(&sb, "- %s\n", issue)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- Formatting helpers ---

func formatKnowledgeResults(query string, chunks []kb.Chunk) string {
	if len(chunks) == 0 {
		return fmt.Sprintf("No results found for query: %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Knowledge base results for %q (%d chunks)\n\n", query, len(chunks))

	for i, c := range chunks {
		fmt.Fprintf(&sb, "### Result %d\n\n", i+1)
		if cat := c.Metadata["category"]; cat != "" {
			fmt.Fprintf(&sb, "**Category:** %s  \n", cat)
		}
		if p := c.Metadata["part"]; p != "" {
			fmt.Fprintf(&sb, "**Part:** %s  \n", p)
		}
		fmt.Fprintf(&sb, "\n%s\n\n", c.Text)
	}

	return sb.String()
}
