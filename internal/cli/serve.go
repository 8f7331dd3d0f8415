package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pingrid/pingrid/internal/server"
	"github.com/pingrid/pingrid/pkg/cache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	cacheDir string
	cacheTTL time.Duration
	noCache  bool
}

// newServeCmd creates the serve command, which runs the HTTP render
// endpoint with an optional artifact cache.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:     ":8080",
		cacheTTL: server.DefaultArtifactTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render server",
		Long: `Run an HTTP server exposing the render pipeline.

POST a JSON body with pin definitions, colors, and options to
/api/render?engine=table&format=svg and receive the rendered artifact.
Finished artifacts are cached by request hash: in Redis when --redis is
given, otherwise on disk, or not at all with --no-cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the artifact cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "directory for the file cache (default: user cache dir)")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "how long rendered artifacts stay cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// newCache selects the artifact cache backend from the flags:
// Redis when a URL is given, otherwise a file cache, or a null cache
// with --no-cache.
func newCache(ctx context.Context, opts *serveOpts) (cache.Cache, string, error) {
	if opts.noCache {
		return cache.NewNullCache(), "disabled", nil
	}
	if opts.redisURL != "" {
		c, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, "", err
		}
		return c, "redis", nil
	}

	dir := opts.cacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, "", fmt.Errorf("resolve cache dir: %w", err)
		}
		dir = filepath.Join(base, appName)
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", fmt.Errorf("create file cache: %w", err)
	}
	return c, "file (" + dir + ")", nil
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, backend, err := newCache(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	srv := server.New(logger, c, opts.cacheTTL)
	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Render server listening", "addr", opts.addr, "cache", backend)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
