// Package analyzer drives the call-log pipeline: scan, parse, validate,
// filter and compute the requested report.
package analyzer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/joycelim/callheat/internal/core/model"
	"github.com/joycelim/callheat/internal/data/cache"
	"github.com/joycelim/callheat/internal/data/parser"
	"github.com/joycelim/callheat/internal/data/scanner"
	"github.com/joycelim/callheat/internal/presentation/formatter"
	"github.com/joycelim/callheat/internal/util"
)

type Config struct {
	DataDir      string
	CacheDir     string
	Report       string // overview, heatmap, calendar, trend, distribution
	OutputFormat string // table, json, csv
	View         string // local, remote
	FromMonth    string // inclusive YYYY-MM
	ToMonth      string // inclusive YYYY-MM
	Interval     string // day, week, month
	Metric       string // total, average
	Bins         int
	Limit        int
	Concurrency  int
	Reset        bool
	LocalZone    string
	RemoteZone   string
}

// LoadStats counts what the load phase saw, for logging and the summary
// footer.
type LoadStats struct {
	Files     int
	CacheHits int
	Parsed    int
	Records   int
	Invalid   int
}

type Analyzer struct {
	config  *Config
	cache   *cache.FileCache
	scanner *scanner.FileScanner
}

func New(config *Config) (*Analyzer, error) {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}

	if err := util.InitializeTimeProvider(config.LocalZone, config.RemoteZone); err != nil {
		return nil, err
	}

	fileCache, err := cache.NewFileCache(config.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache directory: %w", err)
	}

	return &Analyzer{
		config:  config,
		cache:   fileCache,
		scanner: scanner.NewFileScanner(config.DataDir),
	}, nil
}

// LoadRecords runs the load phases and returns every valid record.
// Invalid records are skipped and counted; they never abort the batch.
func (a *Analyzer) LoadRecords() ([]model.CallRecord, *LoadStats, error) {
	start := time.Now()
	stats := &LoadStats{}

	if a.config.Reset {
		if err := a.cache.Clear(); err != nil {
			util.LogWarn(fmt.Sprintf("Failed to clear cache: %v", err))
		} else {
			util.LogInfo("Cache cleared")
		}
	}

	files, err := a.scanner.Scan()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan files: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no call-log files found under %s", a.config.DataDir)
	}
	stats.Files = len(files)
	util.LogInfo(fmt.Sprintf("Found %d call-log files", len(files)))

	var parsed []model.CallRecord
	var filesToParse []string
	for _, file := range files {
		if records, ok := a.cache.Get(file); ok {
			stats.CacheHits++
			parsed = append(parsed, records...)
			continue
		}
		filesToParse = append(filesToParse, file)
	}

	if len(filesToParse) > 0 {
		// The parser's cache is scoped to one load, so a reload after a
		// file changes always re-reads it from disk.
		p := parser.NewParser(a.config.Concurrency)
		for result := range p.ParseFiles(filesToParse) {
			if result.Error != nil {
				util.LogWarn(fmt.Sprintf("Failed to parse file %s: %v", result.File, result.Error))
				continue
			}
			stats.Parsed++
			if err := a.cache.Set(result.File, result.Records); err != nil {
				util.LogWarn(fmt.Sprintf("Failed to save cache for %s: %v", result.File, err))
			}
			parsed = append(parsed, result.Records...)
		}
	}

	valid := make([]model.CallRecord, 0, len(parsed))
	for _, record := range parsed {
		if err := record.Validate(); err != nil {
			stats.Invalid++
			util.LogWarn(err.Error())
			continue
		}
		valid = append(valid, record)
	}
	stats.Records = len(valid)

	util.LogDebug(fmt.Sprintf("Load completed in %v: %d files (%d cached, %d parsed), %d valid records, %d rejected",
		time.Since(start), stats.Files, stats.CacheHits, stats.Parsed, stats.Records, stats.Invalid))

	return valid, stats, nil
}

// Run executes the configured report end to end and writes it to stdout.
func (a *Analyzer) Run() error {
	view, err := model.ParseView(a.config.View)
	if err != nil {
		return err
	}

	records, stats, err := a.LoadRecords()
	if err != nil {
		return err
	}
	if stats.Invalid > 0 {
		util.LogWarn(fmt.Sprintf("Rejected %d invalid call records", stats.Invalid))
	}

	filtered, err := FilterByMonthRange(records, view, a.config.FromMonth, a.config.ToMonth)
	if err != nil {
		return err
	}

	report, err := a.buildReport(filtered, view)
	if err != nil {
		return err
	}

	return a.formatAndOutput(report)
}

func (a *Analyzer) buildReport(records []model.CallRecord, view model.View) (*formatter.Report, error) {
	switch a.config.Report {
	case "overview":
		return overviewReport(ComputeOverview(records)), nil
	case "heatmap", "":
		return heatmapReport(BuildHeatmap(records)), nil
	case "calendar":
		return calendarReport(ComputeCalendar(records), a.config.Limit), nil
	case "trend":
		points, err := ComputeTrend(records, view, a.config.Interval, a.config.Metric)
		if err != nil {
			return nil, err
		}
		if a.config.Limit > 0 && len(points) > a.config.Limit {
			points = points[len(points)-a.config.Limit:]
		}
		return trendReport(points, a.config.Interval, a.config.Metric), nil
	case "distribution":
		bins, err := ComputeDistribution(records, a.config.Bins)
		if err != nil {
			return nil, err
		}
		return distributionReport(bins), nil
	default:
		return nil, fmt.Errorf("unknown report %q", a.config.Report)
	}
}

func (a *Analyzer) formatAndOutput(report *formatter.Report) error {
	switch a.config.OutputFormat {
	case "json":
		return formatter.NewJSONFormatter().Format(report)
	case "csv":
		return formatter.NewCSVFormatter().Format(report)
	case "table", "":
		return formatter.NewTableFormatter().Format(report)
	default:
		return errors.New("unknown output format " + a.config.OutputFormat)
	}
}
