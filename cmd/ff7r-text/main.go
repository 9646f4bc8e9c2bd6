package main

import (
	"os"

	"github.com/rcliao/ff7r-text/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
