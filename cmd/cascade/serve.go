package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/cascadebot/cascade/internal/adapters/http"
	"github.com/cascadebot/cascade/internal/cli"
	"github.com/cascadebot/cascade/internal/logging"
	"github.com/cascadebot/cascade/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP activity endpoint",
	Long:  `Starts the bot behind an HTTP server: one POST /api/messages per turn, prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(level))

		registry := prometheus.NewRegistry()
		m := metrics.New(registry)

		b, closer, err := cli.BuildBot(optionsFromFlags(cmd), logger, m.Hooks())
		if err != nil {
			fmt.Printf("Error initializing bot: %v\n", err)
			os.Exit(1)
		}
		defer closer()

		handler := httpAdapter.NewHandler(b,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(registry),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting cascade server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("port", envOr("CASCADE_PORT", "3978"), "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
