package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdapi/internal/api"
	"github.com/xdg/cmdapi/internal/term"
)

var healthServer string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that a server is healthy",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	addClientFlags(healthCmd, &healthServer, nil)
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	c := newClient(healthServer)
	status, err := c.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if status != api.HealthyStatus {
		return fmt.Errorf("server at %s reports status %q", c.BaseURL, status)
	}
	term.Printf("%s: %s\n", c.BaseURL, status)
	return nil
}
