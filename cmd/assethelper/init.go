package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assethelper/internal/config"
	"github.com/vango-dev/assethelper/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		dir    string
		format string
		force  bool
		cfg    = config.New()
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create assethelper.json (or assethelper.yaml with --format yaml) from the
given flags. The file is validated before it is written, and an existing
configuration is left alone unless --force is given.

Examples:
  assethelper init
  assethelper init --document-root web --asset-host "static[].example.com"
  assethelper init --format yaml --theme-root wp-content/themes/blue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.ConfigFileName
			switch format {
			case "json":
			case "yaml", "yml":
				name = "assethelper.yaml"
			default:
				return errors.New("E103").
					WithField("--format").
					WithSuggestion("Use json or yaml")
			}

			if !force && config.Exists(dir) {
				return errors.New("E104").
					WithField(dir).
					WithSuggestion("Run assethelper check --write to normalize it, or pass --force")
			}

			cfg.Theme.Enabled = cfg.Theme.Root != ""
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := filepath.Join(dir, name)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "created %s", path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "dir", ".", "Directory to create the file in")
	flags.StringVar(&format, "format", "json", "File format: json or yaml")
	flags.BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	flags.StringVar(&cfg.DocumentRoot, "document-root", config.DefaultDocumentRoot, "Directory served at \"/\"")
	flags.StringVar(&cfg.Theme.Root, "theme-root", "", "Theme directory; enables theme mode")
	flags.StringVar(&cfg.AssetHost, "asset-host", "", "Asset host template, e.g. cdn[3].example.com")
	flags.BoolVar(&cfg.Secure, "https", false, "Use https for asset host URLs by default")

	return cmd
}
