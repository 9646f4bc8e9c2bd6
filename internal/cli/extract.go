package cli

import (
	"github.com/rcliao/ff7r-text/internal/config"
	"github.com/rcliao/ff7r-text/internal/extract"
	"github.com/rcliao/ff7r-text/internal/uasset"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract every region to CSV",
		Long: "Parses every .uasset/.uexp pair under <data>/<region>/ and writes <out>/<region>.csv. " +
			"Rows without a speaker or text are skipped. With --store, all lines are also saved to the database.",
		Run: runExtract,
	}

	cmd.Flags().String("data", "", "Data directory holding one directory per region (default: $"+config.EnvData+" or ./data)")
	cmd.Flags().String("out", "", "Output directory for CSV files (default: $"+config.EnvOut+" or ./out)")
	cmd.Flags().StringSliceP("region", "r", nil, "Only extract these regions (repeatable)")
	cmd.Flags().IntP("workers", "w", 0, "Packages parsed in parallel (default: number of CPUs)")
	cmd.Flags().Bool("keep-going", false, "Skip packages that fail to parse instead of aborting")
	cmd.Flags().Bool("store", false, "Also save lines to the database")
	cmd.Flags().Bool("loose", false, "Accept packages with more than one export")
	cmd.Flags().Bool("skip-instance", false, "Ignore name instance numbers instead of suffixing them")

	RootCmd.AddCommand(cmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("data"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := flags.GetString("out"); v != "" {
		cfg.OutDir = v
	}
	if v, _ := flags.GetStringSlice("region"); len(v) > 0 {
		cfg.Regions = v
	}
	if v, _ := flags.GetInt("workers"); v > 0 {
		cfg.Workers = v
	}
	if v, _ := flags.GetBool("keep-going"); v {
		cfg.KeepGoing = true
	}
	if v, _ := flags.GetBool("store"); v {
		cfg.Store = true
	}

	opts := extract.Options{
		DataDir:   cfg.DataDir,
		OutDir:    cfg.OutDir,
		Regions:   cfg.Regions,
		Workers:   cfg.Workers,
		KeepGoing: cfg.KeepGoing,
		Parser:    parserOptions(cmd),
	}

	if cfg.Store {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()
		opts.Store = s
	}

	report, err := extract.Run(cmd.Context(), opts)
	if err != nil {
		exitErr("extract", err)
	}
	printJSON(cmd, report)
}

// parserOptions applies --loose and --skip-instance over the config file's
// parser block.
func parserOptions(cmd *cobra.Command) uasset.Options {
	opts := cfg.ParserOptions()
	if v, _ := cmd.Flags().GetBool("loose"); v {
		opts.StrictExports = false
	}
	if v, _ := cmd.Flags().GetBool("skip-instance"); v {
		opts.Names = uasset.NameSkipNumber
	}
	return opts
}
