// Package main is the entry point for the booking API server and its
// maintenance commands.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mentra/group-booking/internal/config"
	"github.com/mentra/group-booking/pkg/logger"
)

var (
	envFile string
	cfg     *config.Config
	log     *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mentra-api",
	Short: "Group therapy matching and booking API",
	Long: `mentra-api serves the intake chat, group catalog, booking and therapist
handoff endpoints.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv(envFile)
		cfg = config.Load()

		// Only the server owns stdout; the other commands print results there.
		output := "stderr"
		if !cmd.HasParent() || cmd.Name() == "serve" {
			output = "stdout"
		}

		var err error
		log, err = logger.New(cfg.LogLevel, logger.Options{Format: cfg.LogFormat, Output: output})
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger.SetGlobal(log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, seedCmd, handoffCmd, eventsCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var (
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default group catalog to the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context(), seedReset)
	},
}

var (
	handoffServer string
	handoffToken  string
	handoffFormat string
	handoffOut    string
)

var handoffCmd = &cobra.Command{
	Use:   "handoff <groupId>",
	Short: "Fetch a therapist handoff from a running server and save it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHandoff(cmd.Context(), args[0], time.Now())
	},
}

var (
	eventsLimit int
)

var eventsCmd = &cobra.Command{
	Use:   "events <groupId>",
	Short: "List booking and handoff events recorded for a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvents(cmd.Context(), cmd.OutOrStdout(), args[0], eventsLimit)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "overwrite an existing catalog and clear bookings")

	handoffCmd.Flags().StringVar(&handoffServer, "server", "", "API base URL (default http://localhost:$PORT/api)")
	handoffCmd.Flags().StringVar(&handoffToken, "token", "", "therapist bearer token")
	handoffCmd.Flags().StringVar(&handoffFormat, "format", "text", "export format: text or json")
	handoffCmd.Flags().StringVarP(&handoffOut, "out", "o", ".", "directory to write the export to")

	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "maximum number of events to show")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
