package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assethelper/internal/errors"
	"github.com/vango-dev/assethelper/pkg/assets"
)

func checkCmd(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration",
		Long: `Load and validate the configuration, then print the effective settings:
document root, theme, subdirectory per asset type and asset host.

Every problem is listed, not only the first. With --write a valid file is
rewritten in normalized form, with defaults filled in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if err := cfg.Validate(); err != nil {
				problems := []error{err}
				if joined, ok := err.(interface{ Unwrap() []error }); ok {
					problems = joined.Unwrap()
				}
				for _, p := range problems {
					warn(w, "%s", errors.FromError(p, "E117").FormatCompact())
				}
				return errors.New("E117").
					WithField(cfg.Path()).
					WithDetail(fmt.Sprintf("%d problem(s) found. Fix them and run check again.", len(problems))).
					Wrap(err)
			}

			if write {
				if err := cfg.Save(); err != nil {
					return err
				}
				success(w, "wrote %s", cfg.Path())
			}

			e, err := newEnv(cmd, opts, cfg)
			if err != nil {
				return err
			}

			site := e.resolver.Site()
			success(w, "%s is valid", cfg.Path())
			info(w, "document root: %s", site.DocumentRoot)
			if site.ThemeMode {
				info(w, "theme root:    %s", site.ThemeRoot)
			}
			for _, c := range assets.Categories {
				dir := site.Subdir(c)
				if dir == "" {
					dir = "(root)"
				}
				info(w, "%-4s subdir:   %s", c, dir)
			}
			if site.AssetHost != "" {
				spec := assets.ParseHostSpec(site.AssetHost)
				switch spec.Kind {
				case assets.PlaceholderRandom:
					info(w, "asset host:    %s (random among %d)", spec.Template, spec.Shards)
				case assets.PlaceholderCategory:
					info(w, "asset host:    %s (by type: css=%s js=%s img=%s)", spec.Template,
						spec.Host(assets.Stylesheet, nil), spec.Host(assets.Script, nil), spec.Host(assets.Image, nil))
				default:
					info(w, "asset host:    %s", spec.Template)
				}
			}
			if cfg.S3 != nil {
				info(w, "timestamps:    s3://%s/%s", cfg.S3.Bucket, cfg.S3.Prefix)
			}
			return e.finish(cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Rewrite a valid configuration file in normalized form")

	return cmd
}
