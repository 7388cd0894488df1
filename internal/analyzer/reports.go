package analyzer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/joycelim/callheat/internal/core/model"
	"github.com/joycelim/callheat/internal/heatmap"
	"github.com/joycelim/callheat/internal/util"
)

const dateLayout = "2006-01-02"

// Overview summarizes the filtered call set, the numbers shown at the top
// of the dashboard.
type Overview struct {
	TotalCalls    int     `json:"totalCalls"`
	TotalMinutes  float64 `json:"totalMinutes"`
	TotalHours    float64 `json:"totalHours"`
	AvgMinutes    float64 `json:"avgMinutes"`
	MedianMinutes float64 `json:"medianMinutes"`
	MaxMinutes    float64 `json:"maxMinutes"`
}

// CalendarDay is one date row of the calendar heatmap: minutes that fell
// on that wall-clock date in each view. WeekStart is the Sunday the date's
// week begins on.
type CalendarDay struct {
	Date          string  `json:"date"`
	Weekday       int     `json:"weekday"`
	WeekStart     string  `json:"weekStart"`
	LocalMinutes  float64 `json:"localMinutes"`
	RemoteMinutes float64 `json:"remoteMinutes"`
}

// TrendPoint is one interval of the duration trend series.
type TrendPoint struct {
	Interval string  `json:"interval"`
	Minutes  float64 `json:"minutes"`
}

// DistributionBin counts calls whose duration fell in [From, To) minutes;
// the last bin is closed on both ends.
type DistributionBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// HeatmapReport pairs the dense grid with the zone labels it was computed
// under, which is all a chart frontend needs.
type HeatmapReport struct {
	LocalZone  string            `json:"localZone"`
	RemoteZone string            `json:"remoteZone"`
	Grid       *heatmap.WeekGrid `json:"grid"`
}

// BuildHeatmap splits every record per view and aggregates the dense
// 7×24 grid. Records are pre-validated; a split failure here means the
// caller broke the contract, so it is skipped with a warning rather than
// poisoning the grid.
func BuildHeatmap(records []model.CallRecord) *HeatmapReport {
	var local, remote []heatmap.Contribution

	for _, r := range records {
		for _, view := range []model.View{model.ViewLocal, model.ViewRemote} {
			start, end := r.Span(view)
			contribs, err := heatmap.SplitByHour(start, end)
			if err != nil {
				util.LogWarn(fmt.Sprintf("Skipping record %s in %s view: %v", r.ID, view, err))
				continue
			}
			if view == model.ViewLocal {
				local = append(local, contribs...)
			} else {
				remote = append(remote, contribs...)
			}
		}
	}

	tp := util.GetTimeProvider()
	return &HeatmapReport{
		LocalZone:  tp.Local().String(),
		RemoteZone: tp.Remote().String(),
		Grid:       heatmap.BuildGrid(local, remote),
	}
}

// ComputeOverview derives the headline stats. Durations are identical in
// both views, so the local projection is used.
func ComputeOverview(records []model.CallRecord) Overview {
	o := Overview{TotalCalls: len(records)}
	if len(records) == 0 {
		return o
	}

	durations := make([]float64, 0, len(records))
	for _, r := range records {
		minutes := r.Duration().Minutes()
		durations = append(durations, minutes)
		o.TotalMinutes += minutes
		if minutes > o.MaxMinutes {
			o.MaxMinutes = minutes
		}
	}
	sort.Float64s(durations)

	o.TotalHours = o.TotalMinutes / 60
	o.AvgMinutes = o.TotalMinutes / float64(len(durations))
	mid := len(durations) / 2
	if len(durations)%2 == 1 {
		o.MedianMinutes = durations[mid]
	} else {
		o.MedianMinutes = (durations[mid-1] + durations[mid]) / 2
	}
	return o
}

// weekStart returns the Sunday beginning the week containing t.
func weekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// ComputeCalendar attributes call minutes to wall-clock dates per view and
// returns one row per date across the observed span, zero-filled so weeks
// render densely. Midnight-crossing calls split across both dates.
func ComputeCalendar(records []model.CallRecord) []CalendarDay {
	type dayTotals struct{ local, remote float64 }
	totals := make(map[string]*dayTotals)
	var minDay, maxDay time.Time

	accumulate := func(view model.View, start, end time.Time) {
		contribs, err := heatmap.SplitByHour(start, end)
		if err != nil {
			return
		}
		for _, c := range contribs {
			day := time.Date(c.BucketStart.Year(), c.BucketStart.Month(), c.BucketStart.Day(), 0, 0, 0, 0, time.UTC)
			key := day.Format(dateLayout)
			if totals[key] == nil {
				totals[key] = &dayTotals{}
			}
			if view == model.ViewLocal {
				totals[key].local += c.Minutes
			} else {
				totals[key].remote += c.Minutes
			}
			if minDay.IsZero() || day.Before(minDay) {
				minDay = day
			}
			if day.After(maxDay) {
				maxDay = day
			}
		}
	}

	for _, r := range records {
		accumulate(model.ViewLocal, r.LocalStart, r.LocalEnd)
		accumulate(model.ViewRemote, r.RemoteStart, r.RemoteEnd)
	}

	if len(totals) == 0 {
		return nil
	}

	var days []CalendarDay
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		row := CalendarDay{
			Date:      key,
			Weekday:   int(day.Weekday()),
			WeekStart: weekStart(day).Format(dateLayout),
		}
		if t := totals[key]; t != nil {
			row.LocalMinutes = t.local
			row.RemoteMinutes = t.remote
		}
		days = append(days, row)
	}
	return days
}

// ComputeTrend groups per-day minutes of the selected view into the
// requested interval. Days with no calls are left out, so averages cover
// days that actually had contact.
func ComputeTrend(records []model.CallRecord, view model.View, interval, metric string) ([]TrendPoint, error) {
	switch interval {
	case "day", "week", "month":
	default:
		return nil, fmt.Errorf("unknown interval %q (want day, week or month)", interval)
	}
	switch metric {
	case "total", "average":
	default:
		return nil, fmt.Errorf("unknown metric %q (want total or average)", metric)
	}

	type bucket struct {
		sum  float64
		days int
	}
	buckets := make(map[string]*bucket)

	for _, day := range ComputeCalendar(records) {
		minutes := day.LocalMinutes
		if view == model.ViewRemote {
			minutes = day.RemoteMinutes
		}
		if minutes == 0 {
			continue
		}

		date, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			return nil, err
		}

		var key string
		switch interval {
		case "week":
			key = weekStart(date).Format(dateLayout)
		case "month":
			key = date.Format("2006-01")
		default:
			key = day.Date
		}

		if buckets[key] == nil {
			buckets[key] = &bucket{}
		}
		buckets[key].sum += minutes
		buckets[key].days++
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		minutes := b.sum
		if metric == "average" {
			minutes = b.sum / float64(b.days)
		}
		points = append(points, TrendPoint{Interval: key, Minutes: minutes})
	}
	return points, nil
}

// ComputeDistribution bins call durations into bins equal-width buckets
// spanning [0, max duration].
func ComputeDistribution(records []model.CallRecord, bins int) ([]DistributionBin, error) {
	if bins < 1 {
		return nil, fmt.Errorf("bin count must be positive, got %d", bins)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var maxMinutes float64
	for _, r := range records {
		if m := r.Duration().Minutes(); m > maxMinutes {
			maxMinutes = m
		}
	}

	width := maxMinutes / float64(bins)
	out := make([]DistributionBin, bins)
	for i := range out {
		out[i].From = float64(i) * width
		out[i].To = float64(i+1) * width
	}

	for _, r := range records {
		idx := int(math.Floor(r.Duration().Minutes() / width))
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out, nil
}
