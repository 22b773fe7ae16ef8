package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/aptgraph/internal/config"
	"github.com/matzehuels/aptgraph/pkg/apt"
	"github.com/matzehuels/aptgraph/pkg/buildinfo"
	"github.com/matzehuels/aptgraph/pkg/cache"
	"github.com/matzehuels/aptgraph/pkg/collect"
	"github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
	aptio "github.com/matzehuels/aptgraph/pkg/io"
	"github.com/matzehuels/aptgraph/pkg/render"
	"github.com/matzehuels/aptgraph/pkg/render/nodelink"
	"github.com/matzehuels/aptgraph/pkg/store"
)

// collectOpts holds the command-line flags of a collection pass. Flags that
// were set override the config file.
type collectOpts struct {
	configPath string
	formats    string
	workers    int
	relations  string
	noCache    bool
	noJSON     bool
	mongoURI   string
}

// collectCommand creates the root command, which runs a collection pass.
func (c *CLI) collectCommand() *cobra.Command {
	var opts collectOpts

	cmd := &cobra.Command{
		Use:   "aptgraph [flags] OUTPUT_DIR",
		Short: "aptgraph graphs the dependencies of installed apt packages",
		Long: `aptgraph lists the installed apt packages, asks apt-cache for each
package's dependencies and writes one graph per relation (Depends,
PreDepends, Recommends, Suggests, Enhances, Breaks, Conflicts, Replaces)
plus an Installed graph into OUTPUT_DIR, as Graphviz DOT, JSON and images.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags(), &opts)
			if err != nil {
				return err
			}
			return c.runCollect(cmd.Context(), args[0], cfg, opts.noCache)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: $APTGRAPH_CONFIG, ./aptgraph.toml, ~/.config/aptgraph/config.toml)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "image format(s): svg (default), png (comma-separated)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "concurrent apt-cache invocations")
	cmd.Flags().StringVarP(&opts.relations, "relations", "r", "", "only build these relation graphs (comma-separated, default all)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the dependency cache")
	cmd.Flags().BoolVar(&opts.noJSON, "no-json", false, "do not write <graph>.json files")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "also publish graphs to this MongoDB")

	return cmd
}

// loadConfig loads the config file and applies the flags that were set.
func (c *CLI) loadConfig(flags *pflag.FlagSet, opts *collectOpts) (*config.Config, error) {
	cfg, path, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	if flags.Changed("format") {
		cfg.Output.Formats = render.ParseFormats(opts.formats)
	}
	if flags.Changed("workers") {
		cfg.Collect.Workers = opts.workers
	}
	if flags.Changed("relations") {
		cfg.Collect.Relations = strings.Split(opts.relations, ",")
	}
	if opts.noJSON {
		off := false
		cfg.Output.JSON = &off
	}
	if flags.Changed("mongo-uri") {
		cfg.Mongo.URI = opts.mongoURI
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runCollect runs one collection pass into dir and prints a summary.
func (c *CLI) runCollect(ctx context.Context, dir string, cfg *config.Config, noCache bool) error {
	sw := newStopwatch(c.Logger)
	runID := uuid.NewString()
	host, _ := os.Hostname()

	dumps, keyer := c.newCache(ctx, cfg, noCache, host)
	defer dumps.Close()

	src := apt.NewCachedSource(
		apt.NewCommandSource(cfg.Apt.List, cfg.Apt.Depends),
		dumps, keyer, cfg.Cache.Expiry(), c.Logger,
	)

	writer, err := nodelink.NewWriter(cfg.Output.Formats, cfg.Output.WriteJSON(), nodelink.Options{RankDir: cfg.Output.RankDir})
	if err != nil {
		return err
	}
	defer writer.Close()
	sinks := graph.MultiSink{writer}

	if cfg.Mongo.URI != "" {
		mongoSink, err := store.NewMongoSink(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			RunID:      runID,
			Host:       host,
		})
		if err != nil {
			return err
		}
		defer mongoSink.Close(context.WithoutCancel(ctx))
		sinks = append(sinks, mongoSink)
	}

	registry := graph.NewRegistry(dir, sinks)
	collector := collect.New(src, registry, c.Logger, collect.Options{
		RunID:     runID,
		Workers:   cfg.Collect.Workers,
		Relations: cfg.RelationFilter(),
		Progress:  printProgress,
	})

	res, err := collector.Run(ctx)
	if err != nil {
		return err
	}

	manifest := aptio.NewManifest(res.RunID, res.Packages, len(res.Errors), registry.Graphs(), writer.Files, time.Now())
	manifest.Generator = buildinfo.Get().Short()
	if err := writeManifest(dir, manifest); err != nil {
		c.Logger.Warn("manifest not written", "err", err)
		res.Errors = append(res.Errors, errors.Wrap(errors.ErrCodeStorage, err, "write manifest"))
	}
	sw.done("collection finished", "packages", res.Packages, "graphs", registry.Len())

	printSummary(dir, res, registry)
	if res.Partial() {
		return errors.New(errors.ErrCodePartial, "%d packages or graphs were skipped", len(res.Errors))
	}
	return nil
}

// newCache opens the dependency dump cache. Redis is used when configured,
// with keys scoped to host; otherwise the XDG file cache. Any failure to
// open a cache degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool, host string) (cache.Cache, cache.Keyer) {
	if noCache || !cfg.Cache.IsEnabled() {
		return cache.NewNullCache(), nil
	}

	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "host:"+host+":")
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

func writeManifest(dir string, m *aptio.Manifest) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return aptio.WriteManifest(dir, m)
}

// printSummary prints the graphs written by a pass.
func printSummary(dir string, res *collect.Result, registry *graph.Registry) {
	printSuccess("Collected %s packages into %s graphs",
		StyleNumber.Render(fmt.Sprint(res.Packages)), StyleNumber.Render(fmt.Sprint(registry.Len())))
	for _, g := range registry.Graphs() {
		printKeyValue(g.Name(), fmt.Sprintf("%d nodes, %d edges", g.NodeCount(), g.EdgeCount()))
	}
	printFile(filepath.Join(dir, aptio.ManifestFile))
	printDetail("run %s", res.RunID)

	if res.Partial() {
		printWarning("%d packages or graphs were skipped, see the log for details", len(res.Errors))
	}
	printNextStep("Browse the graphs", "aptgraph serve "+dir)
}
