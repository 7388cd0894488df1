package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joycelim/callheat/internal/analyzer"
	"github.com/joycelim/callheat/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Data path
	dataDir string

	// Time-zone views
	localZone  string
	remoteZone string

	// Report selection and filtering
	report    string
	fromMonth string
	toMonth   string
	view      string
	interval  string
	metric    string
	bins      int
	limit     int
	reset     bool

	// Output related
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "callheat [flags]",
		Short: "Call-log analytics between two time zones",
		Long: `callheat analyzes the call-log history between two parties living in
different time zones and produces the reports behind the dashboard: the
weekday × hour-of-day heatmap, the call calendar, duration trends and the
duration distribution.

Examples:
  callheat                                      # heatmap with default settings
  callheat --dir ./data --report overview       # headline stats
  callheat --report trend --interval week       # weekly total minutes
  callheat --report trend --metric average      # average minutes per day
  callheat --from 2024-01 --to 2024-06          # restrict to a month range
  callheat --report heatmap --output json       # grid as JSON for charting
  callheat serve                                # HTTP API for the web frontend`,
		RunE: runAnalyze,
	}
)

const (
	defaultLogFile  = "~/.callheat/logs/app.log"
	defaultCacheDir = "~/.callheat/cache"
	defaultDataDir  = "~/.callheat/data"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", defaultDataDir,
		"Call-log directory path")
	rootCmd.PersistentFlags().StringVar(&localZone, "local-zone", util.DefaultLocalZone,
		"IANA zone of the local party")
	rootCmd.PersistentFlags().StringVar(&remoteZone, "remote-zone", util.DefaultRemoteZone,
		"IANA zone of the remote party")

	// Report selection
	rootCmd.Flags().StringVar(&report, "report", "heatmap",
		"Report to compute (overview, heatmap, calendar, trend, distribution)")
	rootCmd.Flags().StringVar(&view, "view", "local",
		"Time-zone view for filtering and single-view reports (local, remote)")

	// Time filtering
	rootCmd.Flags().StringVar(&fromMonth, "from", "",
		"Start month, inclusive (e.g. 2024-01)")
	rootCmd.Flags().StringVar(&toMonth, "to", "",
		"End month, inclusive (e.g. 2024-06)")

	// Trend and distribution tuning
	rootCmd.Flags().StringVar(&interval, "interval", "day",
		"Trend interval (day, week, month)")
	rootCmd.Flags().StringVar(&metric, "metric", "total",
		"Trend metric (total, average)")
	rootCmd.Flags().IntVar(&bins, "bins", 30,
		"Number of distribution bins")
	rootCmd.Flags().IntVar(&limit, "limit", 0,
		"Limit result rows (0 = unlimited)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"Clear cache before analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, debug); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	config := &analyzer.Config{
		DataDir:      expandPath(dataDir),
		CacheDir:     expandPath(defaultCacheDir),
		Report:       report,
		OutputFormat: outputFormat,
		View:         view,
		FromMonth:    fromMonth,
		ToMonth:      toMonth,
		Interval:     interval,
		Metric:       metric,
		Bins:         bins,
		Limit:        limit,
		Concurrency:  runtime.NumCPU(),
		Reset:        reset,
		LocalZone:    localZone,
		RemoteZone:   remoteZone,
	}

	a, err := analyzer.New(config)
	if err != nil {
		return err
	}
	return a.Run()
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
