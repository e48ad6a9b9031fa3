// Package cmd contains all CLI commands for skillx.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/f3rmion/skillx/internal/config"
	"github.com/f3rmion/skillx/internal/logging"
	"github.com/f3rmion/skillx/internal/match"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skillx",
	Short: "Skill Exchange - find people whose skills match yours",
	Long: `skillx is a terminal client for the Skill Exchange matching service.

Enter a user id and a comma separated list of skills; skillx sends them to
the matching service and shows the response as formatted JSON.

Running 'skillx' without arguments launches the interactive form.

Configuration is read from $HOME/.config/skillx/config.yaml, a .env file in
the same directory, and SKILLX_* environment variables.`,
	SilenceUsage: true,
	RunE:         runForm,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/skillx)")
	rootCmd.PersistentFlags().String("endpoint", "", "matching service endpoint (default "+match.DefaultEndpoint+")")
	rootCmd.PersistentFlags().Duration("timeout", 0, "request timeout (default 10s)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves the config directory.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
		return
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
		os.Exit(1)
	}
	viper.Set("config_dir", dir)
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig merges defaults, config file, env and flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper(), getConfigDir())
	if err != nil {
		return nil, err
	}
	if viper.GetBool("verbose") {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger returns a logger for one-shot commands.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return logging.New(w, logging.LevelFromString(cfg.LogLevel))
}

// newClient builds the matching service client from configuration.
func newClient(cfg *config.Config, logger *slog.Logger) (*match.Client, error) {
	return match.NewClient(cfg.Endpoint,
		match.WithTimeout(cfg.Timeout),
		match.WithHealthURL(cfg.HealthURL),
		match.WithLogger(logger),
	)
}
