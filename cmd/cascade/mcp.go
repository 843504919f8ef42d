package main

import (
	"fmt"
	"os"

	mcpAdapter "github.com/cascadebot/cascade/internal/adapters/mcp"
	"github.com/cascadebot/cascade/internal/cli"
	"github.com/cascadebot/cascade/internal/logging"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Exposes the bot as Model Context Protocol tools (send_message, join_conversation) over stdin/stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(level))

		b, closer, err := cli.BuildBot(optionsFromFlags(cmd), logger, domain.LifecycleHooks{})
		if err != nil {
			fmt.Printf("Error initializing bot: %v\n", err)
			os.Exit(1)
		}
		defer closer()

		if err := mcpAdapter.NewServer(b).ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
