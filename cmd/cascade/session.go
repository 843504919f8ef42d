package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cascadebot/cascade/internal/cli"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted conversation and user state",
	Long:  `List, inspect, and remove persisted state scopes in the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all persisted scopes",
	Run: func(cmd *cobra.Command, args []string) {
		store, closer := getStore(cmd)
		defer closer()

		keys, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing scopes: %v\n", err)
			os.Exit(1)
		}

		if len(keys) == 0 {
			fmt.Println("No persisted scopes found.")
			return
		}

		fmt.Println("Persisted scopes:")
		for _, k := range keys {
			fmt.Println("- " + k)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <scope-key>",
	Short: "Inspect a persisted scope (e.g. user/alice)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closer := getStore(cmd)
		defer closer()

		document, err := store.Read(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading scope %q: %v\n", args[0], err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(document, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling document: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <scope-key>",
	Short: "Remove a persisted scope",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closer := getStore(cmd)
		defer closer()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error removing scope %q: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("Removed %s\n", args[0])
	},
}

func getStore(cmd *cobra.Command) (ports.Storage, func() error) {
	store, closer, err := cli.BuildStorage(optionsFromFlags(cmd))
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	return store, closer
}

func init() {
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	rootCmd.AddCommand(sessionCmd)
}
