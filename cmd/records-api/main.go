package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthtrack/records-api/internal/core/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd runs the API when called without a subcommand.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "records-api",
		Short:        "Health records API for doctors",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, _ []string) error { return runServe(cmd.Context()) },
	}
	root.AddCommand(newServeCmd(), newHashPasswordCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// newHashPasswordCmd prints a bcrypt hash suitable for SEED_PASSWORD_HASH.
func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for SEED_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := service.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (0 uses the library default)")
	return cmd
}
