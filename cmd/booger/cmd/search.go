package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/search"
)

// queryFlags are the filter flags shared by every search-family command.
type queryFlags struct {
	limit      int
	language   string
	pathPrefix string
	kind       string
	sessionID  string
	format     string // "text" | "json"
}

func addQueryFlags(cmd *cobra.Command, f *queryFlags) {
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 10, "Maximum number of results")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Filter by detected language")
	cmd.Flags().StringVarP(&f.pathPrefix, "path", "p", "", "Filter by path prefix")
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "Filter by chunk kind")
	cmd.Flags().StringVar(&f.sessionID, "session", "", "Session ID scoping focus/visited/annotation boosts")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format: text, json")
}

func (f queryFlags) toQuery(text string) search.Query {
	return search.Query{
		Text:       text,
		Language:   f.language,
		PathPrefix: f.pathPrefix,
		Kind:       f.kind,
		MaxResults: f.limit,
		SessionID:  f.sessionID,
	}
}

func newSearchCmd() *cobra.Command {
	var flags queryFlags
	var root string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Keyword (BM25-style FTS) search over the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer setupCLILogging()()

			query := strings.Join(args, " ")
			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(resolvedRoot)
			if err != nil {
				return printError(cmd, err)
			}

			results, err := search.Keyword(cmd.Context(), resolvedRoot, cfg, flags.toQuery(query))
			if err != nil {
				return printError(cmd, err)
			}
			return renderResults(cmd, query, results, flags.format)
		},
	}
	addQueryFlags(cmd, &flags)
	addRootFlag(cmd, &root)
	return cmd
}

func renderResults(cmd *cobra.Command, query string, results []search.Result, format string) error {
	if format == "json" {
		return encodeJSON(cmd.OutOrStdout(), results)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No results for %q\n", query)
		return nil
	}
	fmt.Fprintf(out, "%d results for %q:\n\n", len(results), query)
	for i, r := range results {
		location := r.FilePath
		if r.StartLine > 0 {
			location = fmt.Sprintf("%s:%d", r.FilePath, r.StartLine)
		}
		project := ""
		if r.Project != "" {
			project = fmt.Sprintf(" [%s]", r.Project)
		}
		fmt.Fprintf(out, "%d. %s%s (kind=%s name=%s rank=%.3f)\n", i+1, location, project, r.Kind, r.Name, r.Rank)
		for _, line := range firstLines(r.Content, 3) {
			fmt.Fprintf(out, "   %s\n", line)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func firstLines(content string, n int) []string {
	lines := strings.Split(content, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
