package analyzer

import (
	"fmt"
	"time"

	"github.com/joycelim/callheat/internal/core/model"
)

const monthLayout = "2006-01"

// parseMonth accepts an inclusive YYYY-MM bound; empty means unbounded.
func parseMonth(s string) (time.Time, bool, error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad month %q (want YYYY-MM): %w", s, err)
	}
	return t, true, nil
}

// FilterByMonthRange keeps records whose selected-view start month falls
// in [from, to], both inclusive, mirroring the dashboard's month slider.
func FilterByMonthRange(records []model.CallRecord, view model.View, from, to string) ([]model.CallRecord, error) {
	fromMonth, hasFrom, err := parseMonth(from)
	if err != nil {
		return nil, err
	}
	toMonth, hasTo, err := parseMonth(to)
	if err != nil {
		return nil, err
	}
	if !hasFrom && !hasTo {
		return records, nil
	}

	var out []model.CallRecord
	for _, r := range records {
		start, _ := r.Span(view)
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		if hasFrom && month.Before(fromMonth) {
			continue
		}
		if hasTo && month.After(toMonth) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
