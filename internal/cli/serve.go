package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/terrasmith/terrasmith/internal/api"
	"github.com/terrasmith/terrasmith/pkg/cache"
	"github.com/terrasmith/terrasmith/pkg/pipeline"
	"github.com/terrasmith/terrasmith/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
		mongoDB  string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the build pipeline over HTTP. Build results are cached on
disk by default, or in Redis with --redis. Builds are listed from an
in-memory store by default, or persisted to MongoDB with --mongo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			bc, err := serveCache(ctx, noCache, redisURL)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(bc, nil, c.Logger)
			defer runner.Close()

			if mongoURI != "" {
				st, err := store.NewMongoStore(ctx, mongoURI, mongoDB)
				if err != nil {
					return err
				}
				runner.Store = st
			} else {
				runner.Store = store.NewMemoryStore()
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(runner, c.Logger).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
				c.Logger.Info("stopped")
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the build cache (redis://host:port/db)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for build persistence")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "mongodb database name (default terrasmith)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the build cache")

	return cmd
}

// serveCache picks the cache backend for the server.
func serveCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	return newCache(false)
}
