package main

import (
	"fmt"
	"os"

	"github.com/aretw0/shrdlite/internal/worlds"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <world.yaml>",
	Short: "Validate a world document",
	Long:  `Checks a YAML world document against the schema and the state invariants without running anything.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		def, err := worlds.Load(args[0])
		if err != nil {
			fmt.Printf("Invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: world %q, %d objects, %d stacks\n", def.Name, len(def.Objects), len(def.Stacks))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
