package main

import (
	"fmt"
	"os"

	"github.com/cascadebot/cascade/internal/cli"
	"github.com/cascadebot/cascade/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Cascade is a turn-based support bot engine",
	Long: `Cascade resolves an intent for each inbound message, dispatches a
canned response, and escalates to human support after repeated failures.
State is persisted between turns so conversations survive restarts.`,
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
	rootCmd.PersistentFlags().String("store", envOr("CASCADE_STORE", "memory"), "State backend: memory, file, or redis")
	rootCmd.PersistentFlags().String("state-path", envOr("CASCADE_STATE_PATH", ""), "Base path for the file store")
	rootCmd.PersistentFlags().String("redis-addr", envOr("CASCADE_REDIS_ADDR", "localhost:6379"), "Redis address for the redis store")
	rootCmd.PersistentFlags().String("redis-password", os.Getenv("CASCADE_REDIS_PASSWORD"), "Redis password")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
	rootCmd.PersistentFlags().String("catalog", envOr("CASCADE_CATALOG", ""), "YAML file overriding catalog responses")
	rootCmd.PersistentFlags().Int("threshold", 0, "Escalation threshold (0 = default)")
	rootCmd.PersistentFlags().Bool("degraded", false, "Run without a classifier (fallback dialog handles everything)")
	rootCmd.PersistentFlags().String("log-level", envOr("CASCADE_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// optionsFromFlags collects the shared flags into cli.Options.
func optionsFromFlags(cmd *cobra.Command) cli.Options {
	store, _ := cmd.Flags().GetString("store")
	statePath, _ := cmd.Flags().GetString("state-path")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	redisPassword, _ := cmd.Flags().GetString("redis-password")
	redisDB, _ := cmd.Flags().GetInt("redis-db")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	threshold, _ := cmd.Flags().GetInt("threshold")
	degraded, _ := cmd.Flags().GetBool("degraded")
	level, _ := cmd.Flags().GetString("log-level")

	return cli.Options{
		Store:         store,
		StatePath:     statePath,
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		RedisDB:       redisDB,
		CatalogPath:   catalogPath,
		Threshold:     threshold,
		Degraded:      degraded,
		Debug:         logging.ParseLevel(level).String() == "DEBUG",
	}
}
