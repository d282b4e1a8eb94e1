// Package main runs the terminal booking client against a running API.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mentra/group-booking/internal/flow"
	"github.com/mentra/group-booking/internal/tui"
)

var (
	serverURL string
	token     string
	exportDir string
)

var rootCmd = &cobra.Command{
	Use:          "mentra",
	Short:        "Find and book a therapy group from the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		client := flow.NewClient(serverURL, flow.WithToken(token))
		p := tea.NewProgram(tui.New(ctx, client, exportDir), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("client exited: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", envOr("MENTRA_SERVER", flow.DefaultBaseURL), "API base URL")
	rootCmd.Flags().StringVar(&token, "token", os.Getenv("MENTRA_TOKEN"), "therapist bearer token for the handoff screen")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory handoff exports are written to")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
