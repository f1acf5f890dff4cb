package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpAdapter "github.com/aretw0/shrdlite/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  `Exposes the interpreter and planner as MCP tools, over stdio by default or SSE with --sse.`,
	Run: func(cmd *cobra.Command, args []string) {
		ssePort, _ := cmd.Flags().GetInt("sse")

		rt, err := runtimeFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		server := mcpAdapter.NewServer(rt.Engine)

		if ssePort > 0 {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := server.ServeSSE(ctx, ssePort); err != nil {
				fmt.Printf("MCP server error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := server.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("sse", 0, "Serve over SSE on the given port instead of stdio")
}
