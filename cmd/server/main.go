package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/activities/internal/api"
	"github.com/gyaneshwarpardhi/activities/internal/config"
	"github.com/gyaneshwarpardhi/activities/internal/event"
	"github.com/gyaneshwarpardhi/activities/internal/metrics"
	"github.com/gyaneshwarpardhi/activities/internal/registry"
)

const (
	Version = "0.1.0"
	appName = "activities"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		cfgPath  string
		addr     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Extracurricular activity signup service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfgPath, addr, logLevel)
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "configs/activities.yaml", "Path to activity catalog YAML")
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(validateCmd(&cfgPath))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func validateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the activity catalog and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewLoader(*cfgPath)
			if err != nil {
				return err
			}
			cfg := loader.Config()
			if _, err := registry.Build(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d activities)\n", *cfgPath, len(cfg.Activities))
			return nil
		},
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func serve(cfgPath, addrOverride, logLevel string) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(logLevel)}))
	slog.SetDefault(logger)

	// ── Load catalog ─────────────────────────────────────────────────────────
	loader, err := config.NewLoader(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := loader.Config()

	// ── Registry ─────────────────────────────────────────────────────────────
	reg, err := registry.Build(cfg)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}
	for name, a := range reg.ListActivities() {
		metrics.RosterSize.WithLabelValues(name).Set(float64(len(a.Participants)))
	}
	reg.OnChange(metrics.ObserveRoster)
	reg.OnChange(func(ev event.RosterEvent) {
		slog.Info("roster changed",
			"event_id", ev.ID,
			"type", ev.Type,
			"activity", ev.Activity,
			"participant", ev.Participant,
			"roster_size", ev.RosterSize,
		)
	})
	slog.Info("registry seeded", "activities", reg.Len(), "enforce_capacity", reg.EnforcesCapacity())

	// ── HTTP handler (also subscribes to catalog reloads) ────────────────────
	handler := api.New(reg, loader, cfg.Server.StaticDir)

	// ── Hot-reload watcher ───────────────────────────────────────────────────
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("catalog watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	addr := cfg.Server.Addr
	if addrOverride != "" {
		addr = addrOverride
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutMs) * time.Millisecond,
	}

	errC := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errC <- err
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errC:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutMs)*time.Millisecond)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("goodbye")
	return nil
}
