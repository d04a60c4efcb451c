package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/internal/server"
	"github.com/matzehuels/schreier/pkg/cache"
	"github.com/matzehuels/schreier/pkg/catalog"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for group computations. Results are cached (redis when
configured, in memory otherwise) and named groups persist in the catalog
(MongoDB when configured, in memory otherwise).`,
		Example: `  # Listen on the configured address (default :8080)
  schreier serve

  # Explicit address
  schreier serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.serverCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := c.serverCatalog(ctx)
			if err != nil {
				return err
			}
			defer cat.Close(context.Background())

			srv := server.New(server.Options{
				Cache:   store,
				Catalog: cat,
				Logger:  c.Logger,
			})

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return err
				}
				c.Logger.Info("shut down cleanly")
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	return cmd
}

// serverCache picks the cache backend for the server: redis when configured,
// otherwise process-local memory.
func (c *CLI) serverCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		rc, err := cache.NewRedisCache(ctx, addr)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache", "addr", addr)
		return cache.NewInstrumented(rc), nil
	}
	return cache.NewInstrumented(cache.NewMemoryCache()), nil
}

// serverCatalog picks the catalog store: MongoDB when configured, otherwise
// process-local memory.
func (c *CLI) serverCatalog(ctx context.Context) (catalog.Store, error) {
	if uri := c.Config.Server.MongoURI; uri != "" {
		db := c.Config.Server.MongoDatabase
		if db == "" {
			db = appName
		}
		ms, err := catalog.NewMongoStore(ctx, uri, db)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using mongodb catalog", "database", db)
		return ms, nil
	}
	return catalog.NewMemoryStore(), nil
}
