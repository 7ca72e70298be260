package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/imertcoskun/geoint/internal/logger"
	"github.com/imertcoskun/geoint/internal/transport"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	listen := cfg.Server.Listen
	if cmd.Flags().Changed("listen") {
		listen = serveListen
	}

	handler := transport.NewHandler(cfg.Server.MaxUploadBytes)
	server := &http.Server{
		Addr:    listen,
		Handler: handler.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", listen).Info("Server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
