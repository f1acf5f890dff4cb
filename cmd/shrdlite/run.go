package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/shrdlite/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive blocks-world session",
	Long:  `Starts an interactive session: the current world is rendered in the terminal and parse trees typed (or piped) as JSON are planned and applied.`,
	Run: func(cmd *cobra.Command, args []string) {
		world, _ := cmd.Flags().GetString("world")
		if !cmd.Flags().Changed("world") && len(args) > 0 {
			world = args[0]
		}
		jsonMode, _ := cmd.Flags().GetBool("json")

		rt, err := runtimeFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		if err := cli.RunREPL(context.Background(), rt, world, jsonMode); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("world", "w", "small", "Builtin world name or path to a YAML world file")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")

	// 'run' is also the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
}
