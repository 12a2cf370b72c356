package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"freight-exchange/internal/config"
	"freight-exchange/internal/ledger"
	"freight-exchange/internal/listings"
	"freight-exchange/internal/negotiation"
	"freight-exchange/internal/realtime"
	"freight-exchange/internal/server"
	"freight-exchange/internal/sweeper"
	handler "freight-exchange/services/exchange/handler"
	"freight-exchange/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		Long: `Run the exchange API and live-update websocket endpoint.

Example:
  freight-exchange serve
  STORE_DRIVER=sqlite SQLITE_PATH=./exchange.db freight-exchange serve
  freight-exchange serve --config /etc/freight/exchange.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

// App is a fully wired exchange
type App struct {
	Router   *gin.Engine
	Registry *realtime.Registry
	Ledger   *ledger.Service
	Sweeper  *sweeper.Sweeper
	closers  []func()
}

// Close releases the store and journal connections, newest first
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Build opens the configured backends and wires every service to them
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeStore)

	if err := migrate(ctx, store); err != nil {
		app.Close()
		return nil, err
	}

	journal, closeJournal, err := openJournal(ctx, cfg.Journal)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, closeJournal)

	app.Registry = realtime.NewRegistry()
	app.Ledger = ledger.NewService(store, app.Registry, journal)
	exchange := handler.NewExchangeHandler(
		listings.NewService(store, app.Registry, journal),
		app.Ledger,
		negotiation.NewService(store, app.Registry, journal),
	)
	ws := handler.NewWSHandler(app.Registry, handler.WSOptions{
		OriginPatterns: cfg.WebSocket.AllowedOrigins,
		QueueSize:      cfg.WebSocket.QueueSize,
		WriteTimeout:   cfg.WebSocket.WriteTimeout,
	})

	app.Router = server.SetupRouter(exchange, ws)
	app.Sweeper = sweeper.New(app.Ledger, cfg.Sweep.Spec)
	return app, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(gin.ReleaseMode)

	app, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Sweeper.Start(ctx); err != nil {
		return fmt.Errorf("sweeper: %w", err)
	}
	defer app.Sweeper.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// websocket handlers watch their request context, which ends with ctx
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("Starting exchange server", map[string]any{"addr": srv.Addr, "store": cfg.Store.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	utils.Info("Shutting down", map[string]any{"sessions": app.Registry.Len()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("Shutdown error", map[string]any{"error": err.Error()})
		return err
	}
	utils.Info("Stopped", nil)
	return nil
}
