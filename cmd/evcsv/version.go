package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the evcsv version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("evcsv %s (%s)\n", Version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
