package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/grindstone/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Addr()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, app, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

// Handler builds the API handler over the app's services.
func (a *App) Handler() http.Handler {
	srv := api.NewServer(api.Services{
		Dashboard: a.Dashboard,
		Legacy:    a.Legacy,
		History:   a.History,
		Settings:  a.Settings,
		Tasks:     a.Tasks,
		Sessions:  a.Sessions,
		Domains:   a.Domains,
	}, a.logger())
	srv.SetHistoryLimit(a.Config.History.RecentDays)
	if a.Config.Metrics.Enabled {
		srv.EnableMetrics()
	}
	return srv.Handler()
}

func serve(ctx context.Context, cmd *cobra.Command, a *App, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      a.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "grind serving on http://%s\n", addr)
	if a.Config.Metrics.Enabled {
		fmt.Fprintf(cmd.OutOrStdout(), "  Metrics: http://%s/metrics\n", addr)
	}
	a.logger().Info("api listening", "addr", addr)

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
