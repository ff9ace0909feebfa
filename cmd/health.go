package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.logger.Debug("Checking backend health", "api_url", o.cfg.APIURL)

			message, err := o.newClient().Health(cmd.Context())
			if err != nil {
				o.logger.Error("Health check failed", "error", err)
				return fmt.Errorf("backend unavailable at %s: %w", o.cfg.APIURL, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backend Status: %s\n", message)
			return nil
		},
	}
}
