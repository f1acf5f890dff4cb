package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/shrdlite/internal/cli"
	"github.com/spf13/cobra"
)

// planCmd plans one command and exits; the workhorse for test drivers.
var planCmd = &cobra.Command{
	Use:   "plan [parses-json]",
	Short: "Interpret and plan one parsed command",
	Long: `Reads parse trees as JSON (from the argument, --parses file, or stdin),
interprets them against the world, and prints the goal and plan per reading.`,
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

		for _, res := range results {
			fmt.Printf("goal: %s\n", res.Interpretation.Formula.String())
			fmt.Printf("plan: %s\n", strings.Join(res.Plan, " "))
		}
	},
}

func readPayload(args []string, parsesFile string) (string, error) {
	switch {
	case parsesFile != "" && parsesFile != "-":
		data, err := os.ReadFile(parsesFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case len(args) > 0:
		return args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("world", "w", "small", "Builtin world name or path to a YAML world file")
	planCmd.Flags().StringP("parses", "p", "", "File with parse trees as JSON (- for stdin)")
}
