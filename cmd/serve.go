package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/firm-profiler/internal/api"
	"github.com/sells-group/firm-profiler/internal/config"
)

var servePort int

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the classification HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c := *cfg
		if servePort != 0 {
			c.Server.Port = servePort
		}
		if err := c.Validate("serve"); err != nil {
			return err
		}

		handler, err := buildServer(c)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", c.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}
		return runServer(ctx, srv)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func buildServer(c config.Config) (*api.Server, error) {
	classifier, err := newClassifier(c.Profile)
	if err != nil {
		return nil, err
	}
	return api.NewServer(classifier, api.Options{
		Weights:      c.Profile.Weights,
		MaxRecords:   c.Server.MaxRecords,
		RateLimitRPS: c.Server.RateLimitRPS,
		RateBurst:    c.Server.RateBurst,
		CORSOrigins:  c.Server.CORSOrigins,
	}), nil
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("serve: starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return eris.Wrap(err, "serve: listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("serve: shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "serve: shutdown")
	}
	return nil
}
