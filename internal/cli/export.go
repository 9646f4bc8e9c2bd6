package cli

import (
	"github.com/rcliao/ff7r-text/internal/sink"
	"github.com/rcliao/ff7r-text/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored lines",
		Long: "Export stored lines as JSON. With --csv, writes the region's lines in the extract CSV " +
			"format to stdout, or to --out.",
		Run: runExport,
	}

	cmd.Flags().StringP("region", "r", "", "Filter by region")
	cmd.Flags().Bool("csv", false, "Write CSV rows instead of JSON")
	cmd.Flags().StringP("out", "o", "", "CSV file to write (with --csv)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	region, _ := cmd.Flags().GetString("region")
	asCSV, _ := cmd.Flags().GetBool("csv")
	out, _ := cmd.Flags().GetString("out")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stored, err := s.ExportAll(cmd.Context(), region)
	if err != nil {
		exitErr("export", err)
	}

	if !asCSV {
		printJSON(cmd, stored)
		return
	}

	lines := store.Lines(stored)
	if out != "" {
		f, err := sink.Create(out)
		if err != nil {
			exitErr("create csv", err)
		}
		if err := f.Write(lines); err != nil {
			f.Abort()
			exitErr("write csv", err)
		}
		if err := f.Commit(); err != nil {
			exitErr("commit csv", err)
		}
		return
	}

	w, err := sink.NewCSVWriter(cmd.OutOrStdout())
	if err != nil {
		exitErr("write csv", err)
	}
	if err := w.Write(lines); err != nil {
		exitErr("write csv", err)
	}
	if err := w.Flush(); err != nil {
		exitErr("write csv", err)
	}
}
