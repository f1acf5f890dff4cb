package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/shrdlite/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shrdlite",
	Short: "Shrdlite is a natural-language planner for a blocks world",
	Long:  `Shrdlite interprets parsed natural-language commands against a simulated blocks world and plans the arm actions that satisfy them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("store", "", "World store backend: memory, file, or redis (default memory)")
	rootCmd.PersistentFlags().String("data-dir", "", "Base directory for the file store")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the redis store")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database index")
	rootCmd.PersistentFlags().String("grammar", "", "Path to an external grammar config (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Planner search timeout per interpretation")
}

func runtimeFromFlags(cmd *cobra.Command) (*cli.Runtime, error) {
	store, _ := cmd.Flags().GetString("store")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	redisPassword, _ := cmd.Flags().GetString("redis-password")
	redisDB, _ := cmd.Flags().GetInt("redis-db")
	grammar, _ := cmd.Flags().GetString("grammar")
	logLevel, _ := cmd.Flags().GetString("log-level")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	return cli.Build(cli.Options{
		Store:         store,
		DataDir:       dataDir,
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		RedisDB:       redisDB,
		Grammar:       grammar,
		LogLevel:      logLevel,
		Timeout:       time.Duration(timeout),
	})
}
