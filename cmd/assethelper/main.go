package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/assethelper/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	secure     bool
	verbose    bool
	noColor    bool
	metrics    bool
	snapshot   bool
	json       bool
}

func main() {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		errors.DisableColors()
	}
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line in args and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd, opts := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if opts.json {
			errors.FprintJSON(stderr, err)
		} else {
			errors.Fprint(stderr, err)
		}
		return 1
	}
	return 0
}

func newRootCmd() (*cobra.Command, *globalOptions) {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "assethelper",
		Short: "Cache-busted asset URLs and tags for server-rendered pages",
		Long: `assethelper resolves stylesheet, script and image references to URLs
carrying a modification-time query string, optionally spread across
several asset hosts, and renders the matching HTML tags.

Settings are read from assethelper.json (or .yaml/.yml) in the working
directory or the nearest parent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				errors.DisableColors()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default: search upward for assethelper.json)")
	flags.BoolVar(&opts.secure, "secure", false, "Render asset host URLs with https")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print resolver metrics to stderr when done")
	flags.BoolVar(&opts.snapshot, "s3-snapshot", false, "List the S3 bucket once instead of one request per asset")
	flags.BoolVar(&opts.json, "json", false, "Report errors as JSON lines on stderr")

	rootCmd.AddCommand(
		resolveCmd(opts),
		tagCmd(opts),
		checkCmd(opts),
		initCmd(),
		explainCmd(),
		versionCmd(),
	)

	return rootCmd, opts
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
