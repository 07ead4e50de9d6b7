package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/assethelper/internal/errors"
	"github.com/vango-dev/assethelper/pkg/assets"
)

// ConfigFileName is the preferred name of the configuration file.
const ConfigFileName = "assethelper.json"

// ConfigFileNames are the names searched for, in order.
var ConfigFileNames = []string{ConfigFileName, "assethelper.yaml", "assethelper.yml"}

// DefaultDocumentRoot is used when the file does not name one.
const DefaultDocumentRoot = "public"

// Config represents the complete assethelper configuration file.
type Config struct {
	// DocumentRoot is the directory served at "/".
	DocumentRoot string `json:"documentRoot,omitempty" yaml:"documentRoot,omitempty"`

	// Theme contains CMS theme settings.
	Theme ThemeConfig `json:"theme,omitempty" yaml:"theme,omitempty"`

	// Subdirs overrides category subdirectories, keyed by css, js or img.
	// An empty value places that category at the root.
	Subdirs map[string]string `json:"subdirs,omitempty" yaml:"subdirs,omitempty"`

	// AssetHost is the asset host template, e.g. "cdn[3].example.com".
	AssetHost string `json:"assetHost,omitempty" yaml:"assetHost,omitempty"`

	// Secure selects https asset host URLs when no request says otherwise.
	Secure bool `json:"secure,omitempty" yaml:"secure,omitempty"`

	// StampCache configures memoization of modification times.
	StampCache StampCacheConfig `json:"stampCache,omitempty" yaml:"stampCache,omitempty"`

	// S3 reads modification times from a bucket instead of the disk.
	S3 *S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ThemeConfig contains CMS theme settings.
type ThemeConfig struct {
	// Enabled turns on theme mode.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Root is the theme directory.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
}

// StampCacheConfig configures the timestamp cache.
type StampCacheConfig struct {
	// TTL is how long a modification time is reused (e.g., "5s").
	// Empty or "0s" disables the cache.
	TTL string `json:"ttl,omitempty" yaml:"ttl,omitempty"`
}

// S3Config names the bucket mirroring the document root.
type S3Config struct {
	// Bucket is the bucket name.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is prepended to object keys (e.g., "public/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region overrides the region from the AWS environment.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		DocumentRoot: DefaultDocumentRoot,
	}
}

// Load reads configuration from the specified directory.
// It looks for each of ConfigFileNames in turn.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E100").
		WithDetail("No " + strings.Join(ConfigFileNames, ", ") + " found in " + dir).
		WithSuggestion("Create assethelper.json or pass --config")
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No configuration file at " + path).
				WithSuggestion("Create assethelper.json or pass --config")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid " + strings.ToUpper(format)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo atomically writes the configuration to path, in the format its
// extension names.
func (c *Config) SaveTo(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E102").Wrap(err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.New("E102").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.DocumentRoot == "" {
		c.DocumentRoot = DefaultDocumentRoot
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DocumentRoot) == "" {
		errs = append(errs, errors.New("E110").WithField("documentRoot"))
	}
	if c.Theme.Enabled && strings.TrimSpace(c.Theme.Root) == "" {
		errs = append(errs, errors.New("E112").
			WithField("theme.root").
			WithSuggestion("Set theme.root or disable theme mode"))
	}
	for key, dir := range c.Subdirs {
		if _, ok := assets.ParseCategory(key); !ok {
			errs = append(errs, errors.New("E113").WithField("subdirs." + key))
			continue
		}
		if dir != "" && !strings.HasPrefix(dir, "/") {
			errs = append(errs, errors.New("E114").
				WithField("subdirs." + key).
				WithSuggestion(`Use "/` + dir + `"`))
		}
	}
	if c.AssetHost != "" && assets.ParseHostSpec(c.AssetHost).ZeroShards {
		errs = append(errs, errors.New("E111").
			WithField("assetHost").
			WithSuggestion("Use [] to pick the host by asset type"))
	}
	if _, err := c.StampTTL(); err != nil {
		errs = append(errs, err)
	}
	if c.S3 != nil && c.S3.Bucket == "" {
		errs = append(errs, errors.New("E116").WithField("s3.bucket"))
	}

	return errors.Join(errs...)
}

// StampTTL parses StampCache.TTL. Empty means zero.
func (c *Config) StampTTL() (time.Duration, error) {
	if c.StampCache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.StampCache.TTL)
	if err != nil || ttl < 0 {
		e := errors.New("E115").WithField("stampCache.ttl")
		if err != nil {
			e = e.Wrap(err)
		}
		return 0, e
	}
	return ttl, nil
}

// DocumentRootPath returns the absolute document root.
func (c *Config) DocumentRootPath() string {
	return c.abs(c.DocumentRoot)
}

// ThemeRootPath returns the absolute theme root, or "" when unset.
func (c *Config) ThemeRootPath() string {
	if c.Theme.Root == "" {
		return ""
	}
	return c.abs(c.Theme.Root)
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) || c.configPath == "" {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Site validates the configuration and converts it to an assets.Site.
func (c *Config) Site() (assets.Site, error) {
	if err := c.Validate(); err != nil {
		return assets.Site{}, err
	}

	site := assets.Site{
		DocumentRoot: filepath.ToSlash(c.DocumentRootPath()),
		ThemeMode:    c.Theme.Enabled,
		ThemeRoot:    filepath.ToSlash(c.ThemeRootPath()),
		AssetHost:    c.AssetHost,
		Secure:       c.Secure,
	}
	if len(c.Subdirs) > 0 {
		site.Subdirs = make(map[assets.Category]string, len(c.Subdirs))
		for key, dir := range c.Subdirs {
			cat, _ := assets.ParseCategory(key)
			site.Subdirs[cat] = dir
		}
	}
	return site, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the directory holding a
// configuration file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E100").
				WithDetail("No configuration file found in " + startDir + " or any parent directory").
				WithSuggestion("Create assethelper.json or pass --config")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or its nearest parent that has one.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", errors.New("E103").WithField(filepath.Base(path))
	}
}
