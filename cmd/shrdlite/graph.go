package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/shrdlite/internal/cli"
	"github.com/aretw0/shrdlite/internal/presentation/graph"
	"github.com/aretw0/shrdlite/pkg/planner"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [parses-json]",
	Short: "Export a plan as a Mermaid diagram",
	Long:  `Plans one parsed command and outputs a Mermaid diagram (graph TD) of the state path the arm walks.`,
	Run: func(cmd *cobra.Command, args []string) {
		world, _ := cmd.Flags().GetString("world")
		parsesFile, _ := cmd.Flags().GetString("parses")

		payload, err := readPayload(args, parsesFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		rt, err := runtimeFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		w, _, err := cli.LoadWorld(world)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		results, err := rt.Engine.Execute(context.Background(), w, payload)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		output := graph.GenerateMermaid(planner.StateNode{World: w}, results[0].Plan)
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("world", "w", "small", "Builtin world name or path to a YAML world file")
	graphCmd.Flags().StringP("parses", "p", "", "File with parse trees as JSON (- for stdin)")
}
