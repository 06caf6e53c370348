package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/events"
	"storefront/pkg/logger"
	"storefront/router"
	"storefront/socket"
	"storefront/store"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Sugar.Infof("Using %s store", cfg.Driver)

	hub := socket.NewHub()
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	publisher := events.Multi{hub}
	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return err
		}
		publisher = append(publisher, nats)
		logger.Sugar.Infof("Publishing change events to NATS at %s", cfg.NATSURL)
	}
	defer publisher.Close()

	if !cfg.AuthEnabled() {
		logger.Sugar.Warn("ADMIN_JWT_SECRET is not set, mutating routes are unauthenticated")
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(router.Deps{
			Products:   st.Products,
			SEO:        st.SEO,
			Hub:        hub,
			Publisher:  publisher,
			JWTSecret:  cfg.JWTSecret,
			CORSOrigin: cfg.CORSOrigin,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Sugar.Infof("Server running on port %s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Sugar.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Errorf("Graceful shutdown failed: %v", err)
		return err
	}
	return nil
}
