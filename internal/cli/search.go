package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/ff7r-text/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search stored lines",
		Long:  "Search line text, speakers and IDs for matching text. With --fts the query uses SQLite full-text syntax.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("region", "r", "", "Filter by region")
	cmd.Flags().StringP("speaker", "s", "", "Filter by speaker")
	cmd.Flags().Bool("fts", false, "Full-text query instead of substring match")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	region, _ := cmd.Flags().GetString("region")
	speaker, _ := cmd.Flags().GetString("speaker")
	fts, _ := cmd.Flags().GetBool("fts")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Region:   region,
		Speaker:  speaker,
		Query:    query,
		FullText: fts,
		Limit:    limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "[]")
		return
	}

	printJSON(cmd, results)
}
