// Package config loads aptgraph's optional TOML configuration.
//
// Config file locations (priority order):
//  1. the --config flag
//  2. $APTGRAPH_CONFIG
//  3. ./aptgraph.toml
//  4. $XDG_CONFIG_HOME/aptgraph/config.toml (~/.config when unset)
//
// Command-line flags override file values; defaults fill everything else.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/aptgraph/pkg/apt"
	"github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/render"
)

// DefaultCacheTTL is how long cached dependency dumps stay valid.
const DefaultCacheTTL = 24 * time.Hour

// Config is the full configuration file.
type Config struct {
	Apt     AptConfig     `toml:"apt"`
	Output  OutputConfig  `toml:"output"`
	Collect CollectConfig `toml:"collect"`
	Cache   CacheConfig   `toml:"cache"`
	Mongo   MongoConfig   `toml:"mongo"`
}

// AptConfig holds the package-manager commands.
type AptConfig struct {
	List    []string `toml:"list"`
	Depends []string `toml:"depends"`
}

// OutputConfig controls the files written per graph.
type OutputConfig struct {
	Formats []string `toml:"formats"`
	JSON    *bool    `toml:"json"`
	RankDir string   `toml:"rankdir"`
}

// WriteJSON reports whether <name>.json files are written.
func (o OutputConfig) WriteJSON() bool { return o.JSON == nil || *o.JSON }

// CollectConfig controls the collection pass.
type CollectConfig struct {
	Workers   int      `toml:"workers"`
	Relations []string `toml:"relations"`
}

// CacheConfig controls the dependency dump cache.
type CacheConfig struct {
	Enabled  *bool    `toml:"enabled"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      *Duration `toml:"ttl"`
}

// IsEnabled reports whether dumps are cached. Caching is on by default.
func (c CacheConfig) IsEnabled() bool { return c.Enabled == nil || *c.Enabled }

// Expiry returns the configured TTL, or DefaultCacheTTL when unset.
// An explicit zero keeps entries until they are evicted by hand.
func (c CacheConfig) Expiry() time.Duration {
	if c.TTL == nil {
		return DefaultCacheTTL
	}
	return c.TTL.Duration()
}

// MongoConfig enables publishing graphs to MongoDB when URI is set.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration wraps time.Duration for TOML strings such as "12h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// Load finds and loads the config file, or returns defaults if none is
// found. An explicit path must exist. The returned string is the path that
// was loaded, empty for defaults.
func Load(explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads, defaults and validates config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, path, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, path, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, path, nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if len(c.Apt.List) == 0 {
		c.Apt.List = slices.Clone(apt.DefaultListCommand)
	}
	if len(c.Apt.Depends) == 0 {
		c.Apt.Depends = slices.Clone(apt.DefaultDependsCommand)
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = slices.Clone(render.DefaultFormats)
	}
	if c.Output.RankDir == "" {
		c.Output.RankDir = "TB"
	}
	if c.Collect.Workers == 0 {
		c.Collect.Workers = 1
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if err := render.ValidateFormats(c.Output.Formats); err != nil {
		return err
	}
	if _, err := apt.ParseRelations(c.Collect.Relations); err != nil {
		return err
	}
	if c.Collect.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "collect.workers must be at least 1, got %d", c.Collect.Workers)
	}
	if c.Cache.Expiry() < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	switch c.Output.RankDir {
	case "LR", "RL", "TB", "BT":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "output.rankdir must be one of LR, RL, TB, BT, got %q", c.Output.RankDir)
	}
	return nil
}

// RelationFilter returns the configured relations, nil meaning all.
func (c *Config) RelationFilter() []apt.Relation {
	rels, _ := apt.ParseRelations(c.Collect.Relations)
	return rels
}
