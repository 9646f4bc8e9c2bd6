package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete every stored line of a region",
		Run:   runRm,
	}

	cmd.Flags().StringP("region", "r", "", "Region (required)")
	cmd.MarkFlagRequired("region")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	region, _ := cmd.Flags().GetString("region")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.RemoveRegion(cmd.Context(), region)
	if err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"region":%q,"deleted":%d}`+"\n", region, n)
}
