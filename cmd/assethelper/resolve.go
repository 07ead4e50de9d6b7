package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assethelper/internal/errors"
	"github.com/vango-dev/assethelper/pkg/assets"
)

func resolveCmd(opts *globalOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "resolve <ref>...",
		Short: "Print the URL for each asset reference",
		Long: `Resolve asset references to URLs, one per line.

A reference starting with "/" is taken from the document root; any other
name is looked up in the type's subdirectory (/css, /js or /images unless
overridden). Full http:// and https:// URLs are printed unchanged.

Examples:
  assethelper resolve --type img logo.png
  assethelper resolve -t css site.css print.css
  assethelper resolve -t js /vendor/jquery.js --secure`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseType(kind)
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}

			var b strings.Builder
			for _, ref := range args {
				b.WriteString(e.resolver.Resolve(cmd.Context(), ref, cat))
				b.WriteByte('\n')
			}
			if err := writeOutput(cmd.OutOrStdout(), "", b.String()); err != nil {
				return err
			}
			return e.finish(cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "img", "Asset type: css, js or img")

	return cmd
}

func parseType(kind string) (assets.Category, error) {
	cat, ok := assets.ParseCategory(kind)
	if !ok {
		return 0, errors.New("E120").
			WithField("--type").
			WithSuggestion(fmt.Sprintf("Use css, js or img instead of %q", kind))
	}
	return cat, nil
}
