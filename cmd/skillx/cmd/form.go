package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/skillx/internal/logging"
	"github.com/f3rmion/skillx/internal/tui"
	"github.com/spf13/cobra"
)

var formCmd = &cobra.Command{
	Use:     "form",
	Aliases: []string{"i", "ui", "interactive"},
	Short:   "Launch the interactive match form",
	Long: `Launch the interactive terminal form.

Controls:
  tab       Next field
  enter     Submit to the matching service
  pgup/pgdn Scroll the result
  ctrl+y    Copy the result
  f1        Help
  esc       Quit

Logs are written to the configured log_file because the terminal is in use.`,
	RunE: runForm,
}

func init() {
	rootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, logging.LevelFromString(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting form", "endpoint", client.Endpoint())

	p := tea.NewProgram(
		tui.NewApp(client, client.Endpoint(), logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
