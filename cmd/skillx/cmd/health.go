package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the matching service is up",
	Long: `Call the matching service health endpoint and print its response.

The health address defaults to /health on the endpoint's host and can be
set with health_url in the config file or SKILLX_HEALTH_URL.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr(), cfg))
	if err != nil {
		return err
	}

	body, err := client.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s\n", client.HealthURL(), strings.TrimSpace(string(body)))
	return nil
}
