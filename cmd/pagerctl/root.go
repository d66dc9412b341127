package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"relaypager/internal/observability/logging"
)

type rootOptions struct {
	envFile   string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pagerctl",
		Short: "Walk cursor-paginated GraphQL connections",
		Long: `pagerctl drives the pagination controller against a GraphQL endpoint
or a built-in demo data set and prints each page it reaches.

Transport settings come from PAGER_* environment variables and pagination
defaults from PAGINATION_* variables. A .env file is read first when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			logger := logging.New(opts.logFormat, os.Stderr)
			slog.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", logging.FormatText, "log output format (json, text)")

	cmd.AddCommand(newWalkCmd())
	return cmd
}
