package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/f3rmion/skillx/internal/form"
	"github.com/f3rmion/skillx/internal/match"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Submit one match request and print the result",
	Long: `Submit a user id and a comma separated skill list to the matching
service and print the response as indented JSON.

Skills are split on commas and trimmed; empty entries are dropped.

Example:
  skillx match --id u1 --skills "go, rust, sql"
  skillx match --id u1 --skills go,rust --raw`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().String("id", "", "user identifier (sent as-is)")
	matchCmd.Flags().String("skills", "", "comma separated skills")
	matchCmd.Flags().Bool("raw", false, "print the response body exactly as received")
}

func runMatch(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	skills, _ := cmd.Flags().GetString("skills")
	raw, _ := cmd.Flags().GetBool("raw")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	req := match.NewRequest(match.FormInput{Identifier: id, RawSkills: skills})
	res, err := client.Submit(ctx, req)
	if err != nil {
		return fmt.Errorf("submitting match request: %w", err)
	}

	out := string(res)
	if !raw {
		if out, err = form.RenderResult(res); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
