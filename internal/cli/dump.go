package cli

import (
	"github.com/rcliao/ff7r-text/internal/sink"
	"github.com/rcliao/ff7r-text/internal/uasset"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Parse one package and print its lines",
		Long: "Parses the .uasset/.uexp pair that <file> belongs to and prints every line as JSON, " +
			"including lines the CSV export would skip.",
		Args: cobra.ExactArgs(1),
		Run:  runDump,
	}

	cmd.Flags().Bool("header", false, "Also print the header, name table and exports")
	cmd.Flags().Bool("csv", false, "Print the CSV rows instead of JSON")
	cmd.Flags().Bool("loose", false, "Accept packages with more than one export")
	cmd.Flags().Bool("skip-instance", false, "Ignore name instance numbers instead of suffixing them")

	RootCmd.AddCommand(cmd)
}

func runDump(cmd *cobra.Command, args []string) {
	withHeader, _ := cmd.Flags().GetBool("header")
	asCSV, _ := cmd.Flags().GetBool("csv")

	pkg, err := uasset.Open(cmd.Context(), args[0], parserOptions(cmd))
	if err != nil {
		exitErr("dump", err)
	}

	switch {
	case asCSV:
		w, err := sink.NewCSVWriter(cmd.OutOrStdout())
		if err != nil {
			exitErr("write csv", err)
		}
		if err := w.Write(pkg.Lines()); err != nil {
			exitErr("write csv", err)
		}
		if err := w.Flush(); err != nil {
			exitErr("write csv", err)
		}
	case withHeader:
		printJSON(cmd, pkg)
	default:
		printJSON(cmd, pkg.Lines())
	}
}
