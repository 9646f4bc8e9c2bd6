package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieve a stored line by ID",
		Run:   runGet,
	}

	cmd.Flags().StringP("region", "r", "", "Region (required)")
	cmd.Flags().StringP("id", "i", "", "Line ID (required)")

	cmd.MarkFlagRequired("region")
	cmd.MarkFlagRequired("id")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	region, _ := cmd.Flags().GetString("region")
	id, _ := cmd.Flags().GetString("id")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	lines, err := s.Get(cmd.Context(), region, id)
	if err != nil {
		exitErr("get", err)
	}

	// The same ID can occur in several packages of a region.
	if len(lines) > 1 {
		printJSON(cmd, lines)
	} else {
		printJSON(cmd, lines[0])
	}
}
