// Package parser reads line-delimited JSON call logs into call records.
package parser

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joycelim/callheat/internal/core/model"
	"github.com/joycelim/callheat/internal/util"
)

// rawCall mirrors one log line. A line either carries the shared interval
// as UTC instants (startedAt/endedAt) or the four per-view timestamps the
// exporter precomputed.
type rawCall struct {
	ID          string `json:"id,omitempty"`
	StartedAt   string `json:"startedAt,omitempty"`
	EndedAt     string `json:"endedAt,omitempty"`
	LocalStart  string `json:"localStart,omitempty"`
	LocalEnd    string `json:"localEnd,omitempty"`
	RemoteStart string `json:"remoteStart,omitempty"`
	RemoteEnd   string `json:"remoteEnd,omitempty"`
}

// Parser converts call-log files into records, caching per-file results
// for repeat lookups within one run.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string][]model.CallRecord
}

// ParseResult is the outcome for a single file.
type ParseResult struct {
	File    string
	Records []model.CallRecord
	Error   error
}

func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string][]model.CallRecord),
	}
}

// timestamp layouts accepted in call logs, tried in order.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp parses s, interpreting zone-less layouts as wall-clock
// time in loc.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for i, layout := range layouts {
		var t time.Time
		var err error
		if i < 2 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, loc)
		}
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// toRecord builds the dual-view record. When only the shared UTC interval
// is present, both projections are derived from the configured zones;
// otherwise each view keeps its own exported wall-clock pair.
func toRecord(raw rawCall) (model.CallRecord, error) {
	tp := util.GetTimeProvider()

	record := model.CallRecord{ID: raw.ID}
	if record.ID == "" {
		record.ID = model.NewID()
	}

	if raw.StartedAt != "" || raw.EndedAt != "" {
		start, err := parseTimestamp(raw.StartedAt, time.UTC)
		if err != nil {
			return model.CallRecord{}, fmt.Errorf("bad startedAt %q: %w", raw.StartedAt, err)
		}
		end, err := parseTimestamp(raw.EndedAt, time.UTC)
		if err != nil {
			return model.CallRecord{}, fmt.Errorf("bad endedAt %q: %w", raw.EndedAt, err)
		}
		record.LocalStart = start.In(tp.Local())
		record.LocalEnd = end.In(tp.Local())
		record.RemoteStart = start.In(tp.Remote())
		record.RemoteEnd = end.In(tp.Remote())
		return record, nil
	}

	fields := []struct {
		name  string
		value string
		loc   *time.Location
		dst   *time.Time
	}{
		{"localStart", raw.LocalStart, tp.Local(), &record.LocalStart},
		{"localEnd", raw.LocalEnd, tp.Local(), &record.LocalEnd},
		{"remoteStart", raw.RemoteStart, tp.Remote(), &record.RemoteStart},
		{"remoteEnd", raw.RemoteEnd, tp.Remote(), &record.RemoteEnd},
	}
	for _, f := range fields {
		if f.value == "" {
			// Leave the zero value; Validate reports the missing view.
			continue
		}
		t, err := parseTimestamp(f.value, f.loc)
		if err != nil {
			return model.CallRecord{}, fmt.Errorf("bad %s %q: %w", f.name, f.value, err)
		}
		*f.dst = t.In(f.loc)
	}
	return record, nil
}

// ParseFile parses one call-log file. Lines that are not valid JSON or
// have unparseable timestamps are skipped with a debug log; semantic
// validation of the surviving records happens downstream.
func (p *Parser) ParseFile(path string) ([]model.CallRecord, error) {
	p.mu.Lock()
	if cached, ok := p.cache[path]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	util.LogDebug(fmt.Sprintf("Start parsing file: %s", path))

	file, err := os.Open(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to open file: %s - %v", path, err))
		return nil, err
	}
	defer file.Close()

	var records []model.CallRecord
	fileScanner := bufio.NewScanner(file)
	fileScanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for fileScanner.Scan() {
		lineCount++
		line := fileScanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw rawCall
		if err := sonic.Unmarshal(line, &raw); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %s:%d - %v", path, lineCount, err))
			continue
		}

		record, err := toRecord(raw)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip unparseable record %s:%d - %v", path, lineCount, err))
			continue
		}
		records = append(records, record)
	}

	if err := fileScanner.Err(); err != nil {
		util.LogDebug(fmt.Sprintf("Error scanning file: %s - %v", path, err))
		return nil, err
	}

	p.mu.Lock()
	p.cache[path] = records
	p.mu.Unlock()

	return records, nil
}

// ParseFiles parses multiple files concurrently and streams results.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebug(fmt.Sprintf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency))

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			records, err := p.ParseFile(f)
			results <- ParseResult{File: f, Records: records, Error: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebug(fmt.Sprintf("Concurrent parsing finished in %v", time.Since(start)))
	}()

	return results
}
