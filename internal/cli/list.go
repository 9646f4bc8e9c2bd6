package cli

import (
	"fmt"

	"github.com/rcliao/ff7r-text/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored lines",
		Run:   runList,
	}

	cmd.Flags().StringP("region", "r", "", "Filter by region")
	cmd.Flags().StringP("package", "p", "", "Filter by package name")
	cmd.Flags().StringP("speaker", "s", "", "Filter by speaker")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("ids-only", false, "Only output region/package/id")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	region, _ := cmd.Flags().GetString("region")
	pkg, _ := cmd.Flags().GetString("package")
	speaker, _ := cmd.Flags().GetString("speaker")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	lines, err := s.List(cmd.Context(), store.ListParams{
		Region:  region,
		Package: pkg,
		Speaker: speaker,
		Limit:   limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, l := range lines {
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s/%s\n", l.Region, l.Package, l.LineID)
		}
		return
	}

	printJSON(cmd, lines)
}
