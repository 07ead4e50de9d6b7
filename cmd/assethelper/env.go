package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/natefinch/atomic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/vango-dev/assethelper/internal/config"
	"github.com/vango-dev/assethelper/internal/errors"
	"github.com/vango-dev/assethelper/pkg/assets"
	"github.com/vango-dev/assethelper/pkg/middleware"
	"github.com/vango-dev/assethelper/pkg/s3stat"
	"github.com/vango-dev/assethelper/pkg/tags"
)

// env is everything a command needs to resolve assets.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	resolver *assets.Resolver
	builder  *tags.Builder
	registry *prometheus.Registry
}

// loadEnv reads the configuration named by the global flags and builds a
// resolver from it.
func loadEnv(cmd *cobra.Command, opts *globalOptions) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return newEnv(cmd, opts, cfg)
}

// loadConfig reads the file named by --config, or searches upward from the
// working directory. The result is not validated.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFile(opts.configPath)
	}
	return config.LoadFromWorkingDir()
}

// newEnv validates cfg and builds a resolver from it.
func newEnv(cmd *cobra.Command, opts *globalOptions, cfg *config.Config) (*env, error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	logger.Debug("config loaded", "path", cfg.Path())

	site, err := cfg.Site()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("secure") {
		site.Secure = opts.secure
	}

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(middleware.WithRegistry(registry))

	stater, err := newStater(cmd.Context(), cfg, site, opts, logger)
	if err != nil {
		return nil, err
	}
	ttl, _ := cfg.StampTTL()
	if ttl > 0 {
		stater = assets.NewStampCache(stater, ttl)
	}
	stater = metrics.Stater(middleware.TracingStater(stater))

	resolver := assets.NewResolver(site,
		assets.WithStater(stater),
		assets.WithObserver(metrics),
		assets.WithLogger(logger),
	)

	return &env{
		cfg:      cfg,
		logger:   logger,
		resolver: resolver,
		builder:  tags.New(resolver),
		registry: registry,
	}, nil
}

// newStater returns the local filesystem stater, or an S3 one when the
// configuration names a bucket.
func newStater(ctx context.Context, cfg *config.Config, site assets.Site, opts *globalOptions, logger *slog.Logger) (assets.Stater, error) {
	if cfg.S3 == nil {
		return assets.OSStater{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.New("E122").Wrap(err)
	}

	st := s3stat.New(s3.NewFromConfig(awsCfg), s3stat.Options{
		Bucket: cfg.S3.Bucket,
		Root:   site.DocumentRoot,
		Prefix: cfg.S3.Prefix,
		Logger: logger,
	})
	if !opts.snapshot {
		return st, nil
	}
	snap, err := st.Snapshot(ctx)
	if err != nil {
		return nil, errors.New("E122").
			WithDetail("Listing s3://" + cfg.S3.Bucket + "/" + cfg.S3.Prefix + " failed.").
			Wrap(err)
	}
	return snap, nil
}

// finish prints collected metrics when --metrics was given.
func (e *env) finish(w io.Writer, opts *globalOptions) error {
	if !opts.metrics {
		return nil
	}
	families, err := e.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes out to path atomically, or to w when path is "".
func writeOutput(w io.Writer, path, out string) error {
	if path == "" {
		_, err := io.WriteString(w, out)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(out)); err != nil {
		return errors.FromError(err, "E121").WithField(path)
	}
	return nil
}
