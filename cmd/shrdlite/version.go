package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/shrdlite"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shrdlite",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shrdlite version %s\n", strings.TrimSpace(shrdlite.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
