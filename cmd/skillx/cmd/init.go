package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/skillx/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize skillx configuration",
	Long: `Write a config.yaml template to your config directory.

Edit the file to point skillx at your matching service. Every value can also
be overridden with SKILLX_* environment variables or command line flags.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Set 'endpoint' to your matching service address")
	fmt.Fprintln(out, "  2. Run 'skillx health' to check the service is reachable")
	fmt.Fprintln(out, "  3. Run 'skillx' to open the match form")

	return nil
}
