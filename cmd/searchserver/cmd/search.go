package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/paginator"
)

type searchOptions struct {
	status   string
	pageSize int
	format   string
}

type searchOutput struct {
	Query   string              `json:"query"`
	Results []document.Document `json:"results"`
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Run ranked queries against the corpus",
		Long: `Run each argument as a separate query and print its top documents.

Prefix a word with '-' to exclude documents containing it. Separate the
queries from the flags with '--' when a query starts with '-'.

Examples:
  searchserver search --corpus corpus.yaml "fluffy well-groomed cat"
  searchserver search --corpus corpus.yaml --status banned -- "-cat dog"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.status, "status", "s", "", "Document status to match (default from config)")
	cmd.Flags().IntVarP(&opts.pageSize, "page-size", "p", 0, "Results per printed page (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, queries []string, opts searchOptions) error {
	cfg := root.cfg
	status := cfg.Search.DefaultStatus
	if opts.status != "" {
		parsed, err := document.ParseStatus(opts.status)
		if err != nil {
			return err
		}
		status = parsed
	}
	pageSize := cfg.Search.PageSize
	if opts.pageSize != 0 {
		pageSize = opts.pageSize
	}
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	server, err := buildServer(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	queue := analytics.NewRequestQueue(server)

	out := cmd.OutOrStdout()
	outputs := make([]searchOutput, 0, len(queries))
	for _, query := range queries {
		docs, err := queue.AddFindRequestByStatus(query, status)
		if err != nil {
			return fmt.Errorf("query %q: %w", query, err)
		}
		if opts.format == "json" {
			outputs = append(outputs, searchOutput{Query: query, Results: docs})
			continue
		}
		printResults(out, query, docs, pageSize)
	}

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"searches":           outputs,
			"no_result_requests": queue.NoResultRequests(),
		})
	}
	fmt.Fprintf(out, "Total empty requests: %d\n", queue.NoResultRequests())
	return nil
}

func printResults(out io.Writer, query string, docs []document.Document, pageSize int) {
	fmt.Fprintf(out, "Search results for: %s\n", query)
	pages := paginator.PageCount(len(docs), pageSize)
	page := 0
	for docsOnPage := range paginator.Paginate(docs, pageSize) {
		for _, doc := range docsOnPage {
			fmt.Fprintln(out, doc)
		}
		page++
		if page < pages {
			fmt.Fprintln(out, "Page break")
		}
	}
}
