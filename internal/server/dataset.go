package server

import (
	"fmt"
	"sync"

	"github.com/joycelim/callheat/internal/analyzer"
	"github.com/joycelim/callheat/internal/core/model"
	"github.com/joycelim/callheat/internal/util"
)

// Dataset is the loaded call history the API serves from. It is replaced
// wholesale on reload, so request handlers only ever see a consistent
// snapshot.
type Dataset struct {
	loader *analyzer.Analyzer
	mu     sync.RWMutex
	calls  []model.CallRecord
}

func NewDataset(loader *analyzer.Analyzer) *Dataset {
	return &Dataset{loader: loader}
}

// Reload re-runs the load pipeline and swaps in the fresh records.
func (d *Dataset) Reload() error {
	records, stats, err := d.loader.LoadRecords()
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.calls = records
	d.mu.Unlock()

	util.LogInfo(fmt.Sprintf("Dataset reloaded: %d records from %d files (%d rejected)",
		stats.Records, stats.Files, stats.Invalid))
	return nil
}

// Records returns the current snapshot.
func (d *Dataset) Records() []model.CallRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.calls
}
