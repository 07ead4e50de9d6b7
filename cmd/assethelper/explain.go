package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/assethelper/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <code>",
		Short: "Describe an error code",
		Long: `Print the message, category and explanation registered for an error code
such as E111.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.Explain(cmd.OutOrStdout(), args[0])
		},
	}
}
