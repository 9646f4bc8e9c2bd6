package cli

import (
	"github.com/rcliao/ff7r-text/internal/discover"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List regions in the database",
		Long:  "Lists stored regions with their line counts. With --data, lists the region directories on disk instead.",
		Run:   runRegions,
	}

	cmd.Flags().Bool("data", false, "List region directories under the data directory")

	RootCmd.AddCommand(cmd)
}

func runRegions(cmd *cobra.Command, args []string) {
	onDisk, _ := cmd.Flags().GetBool("data")
	if onDisk {
		regions, err := discover.Regions(cfg.DataDir)
		if err != nil {
			exitErr("list regions", err)
		}
		printJSON(cmd, regions)
		return
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rows, err := s.Regions(cmd.Context())
	if err != nil {
		exitErr("list regions", err)
	}

	printJSON(cmd, rows)
}
