package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveDebug   bool
	serveRate    float64
	serveUnknown bool
	servePreload bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8501)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Log at debug level")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 0, "Requests per second before 429 (default from config)")
	serveCmd.Flags().BoolVar(&serveUnknown, "include-unknown", false, "Count papers with no journal or source under \"unknown\"")
	serveCmd.Flags().BoolVar(&servePreload, "preload", true, "Load the dataset before accepting requests")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve an interactive dashboard.

The dataset is loaded once and shared by all requests. Each request picks
its own year range with query parameters.

Endpoints:
  GET /                 HTML dashboard (?from=2020&to=2021&top=10)
  GET /api/report       Report as JSON (same parameters, plus cloud=false)
  GET /wordcloud.svg    Word cloud image, 204 when there is nothing to display
  GET /healthz          Liveness and whether the dataset is loaded

Stop with Ctrl-C; in-flight requests are allowed to finish.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	level := slog.LevelInfo
	if serveDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data := dataset.NewCache(cfg.DataPath)
	// Without preloading the configured range is used unclamped.
	yearMin, yearMax := cfg.YearMin, cfg.YearMax
	if servePreload {
		ds, err := data.Get()
		if err != nil {
			exitForLoadError(err)
		}
		mustHaveRows(ds)
		yearMin, yearMax = mustResolveYears("", cfg, ds)
	}

	settings := server.Settings{
		YearMin:        yearMin,
		YearMax:        yearMax,
		TopN:           cfg.TopN,
		PreviewRows:    cfg.PreviewRows,
		IncludeUnknown: cfg.IncludeUnknown || serveUnknown,
		Cloud:          cfg.WordCloud,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	}
	if cmd.Flags().Changed("rate") {
		settings.RateLimit = serveRate
	}

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		exitWithError(ExitError, "listening on %s: %v", addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving dashboard", "addr", "http://"+ln.Addr().String(), "data", cfg.DataPath)
	if err := server.New(data, settings, logger).Run(ctx, ln); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	logger.Info("shut down")
	return nil
}
