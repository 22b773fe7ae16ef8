package collect

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/aptgraph/pkg/apt"
	"github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
	"github.com/matzehuels/aptgraph/pkg/observability"
)

// Options configures a collection pass.
type Options struct {
	// RunID identifies the pass. A random UUID is used when empty.
	RunID string

	// Workers bounds concurrent dependency fetches. Values below 2 fetch
	// sequentially.
	Workers int

	// Relations restricts which relation graphs are built. Empty means all.
	// The Installed graph is always built.
	Relations []apt.Relation

	// Progress receives completion percentages; see [Progress].
	Progress func(percent int)
}

// Result summarizes a finished pass.
type Result struct {
	RunID    string
	Packages int
	Duration time.Duration

	// Errors holds every recoverable error: skipped packages and graphs
	// that failed to persist or render.
	Errors []error
}

// Partial reports whether anything was skipped.
func (r *Result) Partial() bool { return len(r.Errors) > 0 }

// Collector runs collection passes. Graph mutation happens only on the
// goroutine that calls Run.
type Collector struct {
	source   apt.Source
	registry *graph.Registry
	logger   *log.Logger
	opts     Options
}

// New creates a Collector filling registry from src.
func New(src apt.Source, registry *graph.Registry, logger *log.Logger, opts Options) *Collector {
	if logger == nil {
		logger = log.Default()
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	return &Collector{source: src, registry: registry, logger: logger, opts: opts}
}

// RunID returns the identifier of this collector's pass.
func (c *Collector) RunID() string { return c.opts.RunID }

// fetched is one package's dependency dump, or the error fetching it.
type fetched struct {
	pkg      string
	dump     string
	err      error
	duration time.Duration
}

// Run lists installed packages, fetches and parses each one's
// dependencies, fills the registry, then persists and renders every graph.
//
// A listing failure is returned as an error carrying
// [errors.ErrCodeCollection] and nothing is persisted. If ctx ended, its
// error is returned instead. Per-package and
// per-graph failures are logged and collected in Result.Errors.
func (c *Collector) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	hooks := observability.Collect()

	pkgs, err := c.source.ListInstalled(ctx)
	hooks.OnListComplete(ctx, len(pkgs), time.Since(start), err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, errors.ErrCodeCollection) {
			err = errors.Wrap(errors.ErrCodeCollection, err, "list installed packages")
		}
		return nil, err
	}
	c.logger.Info("listed installed packages", "count", len(pkgs))

	result := &Result{RunID: c.opts.RunID, Packages: len(pkgs)}
	installed := c.registry.Installed()
	for _, pkg := range pkgs {
		installed.AddNode(pkg)
	}
	progress := NewProgress(len(pkgs), c.opts.Progress)

	for f := range c.fetchAll(ctx, pkgs) {
		n, err := c.route(f)
		hooks.OnPackageComplete(ctx, f.pkg, n, f.duration, err)
		if err != nil {
			c.logger.Warn("skipping package", "pkg", f.pkg, "err", errors.UserMessage(err))
			result.Errors = append(result.Errors, err)
		}
		progress.Step()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalizeStart := time.Now()
	persistErr := c.registry.PersistAll(ctx)
	renderErr := c.registry.RenderAll(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range append(unjoin(persistErr), unjoin(renderErr)...) {
		c.logger.Warn("graph output failed", "err", errors.UserMessage(err))
		result.Errors = append(result.Errors, err)
	}
	hooks.OnFinalizeComplete(ctx, c.registry.Len(), time.Since(finalizeStart),
		errors.Join(persistErr, renderErr))

	result.Duration = time.Since(start)
	return result, nil
}

// route parses one fetched dump and adds its edges to the registry. It
// returns the number of edges routed.
func (c *Collector) route(f fetched) (int, error) {
	if f.err != nil {
		if !errors.IsRecoverable(f.err) {
			return 0, errors.Wrap(errors.ErrCodeFetch, f.err, "dependencies of %s", f.pkg)
		}
		return 0, f.err
	}

	edges, err := apt.ParseDepends(f.dump, f.pkg)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range edges {
		if len(c.opts.Relations) > 0 && !slices.Contains(c.opts.Relations, e.Relation) {
			continue
		}
		c.registry.Get(e.Relation.String()).AddEdge(e.From, e.To)
		n++
	}
	c.logger.Debug("parsed dependencies", "pkg", f.pkg, "edges", n, "duration", f.duration)
	return n, nil
}

// fetchAll fetches every package's dump on a pool of at most Workers
// goroutines and streams the results. With a single worker results arrive
// in listing order. The channel is closed once every fetch has finished.
func (c *Collector) fetchAll(ctx context.Context, pkgs []string) <-chan fetched {
	workers := max(c.opts.Workers, 1)
	out := make(chan fetched, workers)

	go func() {
		defer close(out)
		var g errgroup.Group
		g.SetLimit(workers)
		for _, pkg := range pkgs {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				start := time.Now()
				dump, err := c.source.Depends(ctx, pkg)
				out <- fetched{pkg: pkg, dump: dump, err: err, duration: time.Since(start)}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
