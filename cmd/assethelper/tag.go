package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/assethelper/pkg/tags"
)

func tagCmd(opts *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "tag <type>",
		Short: "Render HTML tags for assets",
		Long: `Render <link>, <script> or <img> tags for assets.

Types:
  stylesheet  <link rel="stylesheet"> tags; ".css" is appended when missing
  javascript  <script> tags; ".js" is appended when missing
  image       a single <img> tag

With --out the result is written atomically to a file, ready to be
included by a static page template.

Examples:
  assethelper tag stylesheet site print --media screen
  assethelper tag javascript vendor/jquery app --out head-scripts.html
  assethelper tag image logo.png --alt "Home" --size 120x40 --attr class=brand`,
	}

	cmd.PersistentFlags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	cmd.AddCommand(
		tagStylesheetCmd(opts, &out),
		tagJavascriptCmd(opts, &out),
		tagImageCmd(opts, &out),
	)

	return cmd
}

func tagStylesheetCmd(opts *globalOptions, out *string) *cobra.Command {
	var media string

	cmd := &cobra.Command{
		Use:     "stylesheet [file]...",
		Aliases: []string{"css"},
		Short:   "Render <link> tags",
		Long: `Render one <link> tag per stylesheet. Without arguments, a site in theme
mode gets its style.css.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}
			html := e.builder.Stylesheet(cmd.Context(), tags.StylesheetOptions{Files: args, Media: media})
			if html == "" {
				warn(cmd.ErrOrStderr(), "no stylesheets given and theme mode is off")
			}
			if err := writeOutput(cmd.OutOrStdout(), *out, html); err != nil {
				return err
			}
			return e.finish(cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&media, "media", tags.DefaultMedia, "Media attribute")

	return cmd
}

func tagJavascriptCmd(opts *globalOptions, out *string) *cobra.Command {
	return &cobra.Command{
		Use:     "javascript <file>...",
		Aliases: []string{"js", "script"},
		Short:   "Render <script> tags",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), *out, e.builder.Javascript(cmd.Context(), args...)); err != nil {
				return err
			}
			return e.finish(cmd.ErrOrStderr(), opts)
		},
	}
}

func tagImageCmd(opts *globalOptions, out *string) *cobra.Command {
	var img tags.ImageOptions

	cmd := &cobra.Command{
		Use:     "image <file>",
		Aliases: []string{"img"},
		Short:   "Render an <img> tag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}
			html := e.builder.Image(cmd.Context(), args[0], img)
			if html != "" {
				html += "\n"
			}
			if err := writeOutput(cmd.OutOrStdout(), *out, html); err != nil {
				return err
			}
			return e.finish(cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&img.Alt, "alt", "", "Alternate text")
	cmd.Flags().StringVar(&img.Size, "size", "", "Dimensions as WIDTHxHEIGHT")
	cmd.Flags().StringToStringVar(&img.Attrs, "attr", nil, "Extra attributes as name=value")

	return cmd
}
