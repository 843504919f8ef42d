package main

import (
	"fmt"
	"os"

	"github.com/cascadebot/cascade/internal/cli"
	"github.com/cascadebot/cascade/internal/logging"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive local conversation",
	Long:  `Runs the bot in the terminal. Each line of input is one turn; type /quit to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(level))

		if err := cli.RunChat(cmd.Context(), optionsFromFlags(cmd), logger); err != nil {
			fmt.Printf("Chat error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
