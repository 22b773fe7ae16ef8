package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aptgraph/pkg/errors"
	aptio "github.com/matzehuels/aptgraph/pkg/io"
	"github.com/matzehuels/aptgraph/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve OUTPUT_DIR",
		Short: "Serve a finished output directory over HTTP",
		Long: `Serve the graphs of a finished collection pass:

  GET /api/graphs                 run manifest
  GET /api/graphs/{name}          graph as JSON
  GET /graphs/{name}.{format}     DOT source (gv) or rendered image`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8080", "listen address")

	return cmd
}

// runServe serves dir until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, dir, addr string) error {
	m, err := aptio.ReadManifest(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "%s is not an aptgraph output directory", dir)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeRouter(dir, c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printSuccess("Serving %d graphs from run %s", len(m.Graphs), m.RunID)
	printKeyValue("address", "http://"+addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServeRouter builds the HTTP routes over an output directory. The
// manifest is re-read per request so a new pass into dir shows up without
// a restart.
func newServeRouter(dir string, c *CLI) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(c))

	r.Get("/api/graphs", func(w http.ResponseWriter, req *http.Request) {
		m, err := aptio.ReadManifest(dir)
		if err != nil {
			writeError(w, req, errors.Wrap(errors.ErrCodeNotFound, err, "no manifest"))
			return
		}
		writeJSON(w, http.StatusOK, m)
	})

	r.Get("/api/graphs/{name}", func(w http.ResponseWriter, req *http.Request) {
		serveArtifact(w, req, dir, chi.URLParam(req, "name"), "json")
	})

	r.Get("/graphs/{name}.{format}", func(w http.ResponseWriter, req *http.Request) {
		serveArtifact(w, req, dir, chi.URLParam(req, "name"), chi.URLParam(req, "format"))
	})

	return r
}

// serveArtifact serves <name>.<ext> if the manifest lists it.
func serveArtifact(w http.ResponseWriter, req *http.Request, dir, name, ext string) {
	if err := errors.ValidateGraphName(name); err != nil {
		writeError(w, req, errors.Wrap(errors.ErrCodeNotFound, err, "unknown graph"))
		return
	}
	m, err := aptio.ReadManifest(dir)
	if err != nil {
		writeError(w, req, errors.Wrap(errors.ErrCodeNotFound, err, "no manifest"))
		return
	}
	gm, ok := m.Graph(name)
	file := name + "." + ext
	if !ok || !slices.Contains(gm.Files, file) {
		writeError(w, req, errors.New(errors.ErrCodeNotFound, "no %s", file))
		return
	}

	path := filepath.Join(dir, file)
	if _, err := os.Stat(path); err != nil {
		writeError(w, req, errors.Wrap(errors.ErrCodeNotFound, err, "no %s", file))
		return
	}
	if ext == "gv" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	}
	http.ServeFile(w, req, path)
}

// requestLogger attaches the CLI logger to each request context, logs the
// request at debug level and reports it to the HTTP hooks.
func requestLogger(c *CLI) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.HTTP()
			ctx := withLogger(r.Context(), c.Logger)
			hooks.OnRequest(ctx, r.Method, r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnResponse(ctx, r.Method, r.URL.Path, status, time.Since(start))
			c.Logger.Debug("http request", "method", r.Method, "path", r.URL.Path,
				"status", status, "bytes", ww.BytesWritten(), "duration", time.Since(start))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err as {"code", "error"} with a status derived from its
// code.
func writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errors.ErrCodeNotFound) {
		status = http.StatusNotFound
	}
	loggerFromContext(req.Context()).Debug("request failed", "path", req.URL.Path, "err", err)
	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
