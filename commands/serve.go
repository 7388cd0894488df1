package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joycelim/callheat/internal/analyzer"
	"github.com/joycelim/callheat/internal/server"
	"github.com/joycelim/callheat/internal/util"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dashboard reports as a JSON API",
	Long: `Starts an HTTP server exposing the dashboard reports to the web
frontend: /api/overview, /api/heatmap, /api/calendar, /api/trend and
/api/distribution. The data directory is watched, so new call logs show
up without a restart.

Configuration comes from the environment (PORT, ALLOWED_ORIGINS,
LOG_LEVEL, DATA_DIR, CACHE_DIR, LOCAL_ZONE, REMOTE_ZONE); a .env file is
honored. The --dir, --local-zone and --remote-zone flags override it.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.LoadConfig()

	// Flags take precedence over environment defaults.
	if cmd.Flags().Changed("dir") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("local-zone") {
		cfg.LocalZone = localZone
	}
	if cmd.Flags().Changed("remote-zone") {
		cfg.RemoteZone = remoteZone
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.CacheDir = expandPath(cfg.CacheDir)

	logLevel := cfg.LogLevel
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	// Serve mode always logs to the console.
	if err := util.InitLogger(logLevel, logFile, true); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	loader, err := analyzer.New(&analyzer.Config{
		DataDir:     cfg.DataDir,
		CacheDir:    cfg.CacheDir,
		Concurrency: runtime.NumCPU(),
		LocalZone:   cfg.LocalZone,
		RemoteZone:  cfg.RemoteZone,
	})
	if err != nil {
		return err
	}

	dataset := server.NewDataset(loader)
	if err := dataset.Reload(); err != nil {
		return fmt.Errorf("initial data load failed: %w", err)
	}

	srv := server.New(cfg, dataset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.WatchDataDir(ctx, cfg.DataDir, dataset); err != nil {
			util.LogWarn(fmt.Sprintf("File watching disabled: %v", err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		util.LogInfo(fmt.Sprintf("Received %s, shutting down", sig))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
