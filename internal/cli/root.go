// Package cli implements the ff7r-text CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rcliao/ff7r-text/internal/config"
	"github.com/rcliao/ff7r-text/internal/ctxlog"
	"github.com/rcliao/ff7r-text/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string

	// cfg is resolved before every command runs.
	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "ff7r-text",
	Short: "Extract dialogue text from FF7R packages",
	Long: "Extracts dialogue lines from paired .uasset/.uexp files into one CSV per region, " +
		"and optionally into a searchable SQLite line store.",
	PersistentPreRun: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $"+config.EnvDB+" or ~/.ff7r-text/lines.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "HCL config file (default: ./"+config.DefaultFile+" if present)")
	RootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	RootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// setup loads the config, applies the persistent flags over it and installs
// the logger in the command context.
func setup(cmd *cobra.Command, args []string) {
	c, err := config.Load(configPath, os.Environ())
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		c.Log.Format, _ = flags.GetString("log-format")
	}
	if err := c.Validate(); err != nil {
		exitErr("config", err)
	}
	cfg = c

	logger := ctxlog.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
}

func getDBPath() string {
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
