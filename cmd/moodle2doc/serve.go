package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Todamie/moodle-xml-to-txt/internal/api"
	"github.com/Todamie/moodle-xml-to-txt/internal/config"
	"github.com/Todamie/moodle-xml-to-txt/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion HTTP service",
	Long: `Serve exposes conversion over HTTP:

  GET  /health        liveness probe
  POST /api/convert   multipart "file" -> converted .txt or .docx
  POST /api/inspect   multipart "file" -> extracted questions as JSON
  GET  /api/stats     recent conversion durations

When api_key is configured the /api routes require "Authorization: Bearer <key>".`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "8090", "listen port")
	viper.BindPFlag(config.KeyPort, serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := loadConfig()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}
	if cfg.APIKey == "" {
		log.Warn("api_key is not set; /api routes are unauthenticated")
	}

	stats := pipeline.NewDurationStats(cfg.StatsWindow)
	srv := api.NewServer(stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting moodle2doc", "port", cfg.Port, "version", version)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		return err
	}
	return nil
}
