package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/shrdlite/internal/presentation/tui"
	"github.com/aretw0/shrdlite/internal/worlds"
	"github.com/spf13/cobra"
)

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Manage stored worlds",
	Long:  `List, inspect, and remove worlds persisted in the configured store (memory, file, or redis).`,
}

var worldLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored worlds",
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := runtimeFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		worlds, err := rt.Sessions.Store().List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing worlds: %v\n", err)
			os.Exit(1)
		}

		if len(worlds) == 0 {
			fmt.Println("No stored worlds found.")
			return
		}

		fmt.Println("Stored Worlds:")
		for _, id := range worlds {
			fmt.Println("- " + id)
		}
	},
}

var worldInspectCmd = &cobra.Command{
	Use:   "inspect <world-id>",
	Short: "Inspect a stored world",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		worldID := args[0]
		render, _ := cmd.Flags().GetBool("render")

		rt, err := runtimeFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		state, err := rt.Sessions.Store().Load(cmd.Context(), worldID)
		if err != nil {
			fmt.Printf("Error loading world '%s': %v\n", worldID, err)
			os.Exit(1)
		}

		if render {
			fmt.Print(tui.RenderWorld(state))
			return
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling world: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var worldRmCmd = &cobra.Command{
	Use:   "rm <world-id>...",
	Short: "Remove one or more worlds",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := runtimeFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		hasError := false
		for _, worldID := range args {
			if err := rt.Sessions.Store().Delete(cmd.Context(), worldID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", worldID, err)
				hasError = true
			} else {
				fmt.Printf("Removed world '%s'\n", worldID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

var worldBuiltinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the builtin worlds",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range worlds.BuiltinNames() {
			fmt.Println(name)
		}
	},
}

// TODO: Add support for --all flag in rm command

func init() {
	rootCmd.AddCommand(worldCmd)
	worldCmd.AddCommand(worldLsCmd)
	worldCmd.AddCommand(worldInspectCmd)
	worldCmd.AddCommand(worldRmCmd)
	worldCmd.AddCommand(worldBuiltinsCmd)

	worldInspectCmd.Flags().Bool("render", false, "Draw the stacks instead of printing JSON")
}
