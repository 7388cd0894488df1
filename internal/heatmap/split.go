// Package heatmap turns call intervals into the dense weekday × hour-of-day
// minute grid the dashboard renders.
package heatmap

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when an interval's end is not strictly
// after its start.
var ErrInvalidInterval = errors.New("heatmap: interval end must be after start")

// Contribution is the share of one call that fell inside a single
// wall-clock hour: BucketStart is aligned to :00 in the interval's own
// location, Minutes may be fractional.
type Contribution struct {
	BucketStart time.Time
	Minutes     float64
}

// truncateToHour drops minutes and below in the timestamp's own wall
// clock. Unlike time.Truncate this stays aligned for zones whose UTC
// offset is not a whole hour.
func truncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// SplitByHour distributes the interval [start, end) over consecutive
// closed-open hour intervals. Each emitted contribution is strictly
// positive; an interval ending exactly on an hour boundary produces no
// bucket for the following hour. The emitted minutes always sum to the
// interval's total duration.
func SplitByHour(start, end time.Time) ([]Contribution, error) {
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	var out []Contribution
	for bucket := truncateToHour(start); bucket.Before(end); bucket = bucket.Add(time.Hour) {
		bucketEnd := bucket.Add(time.Hour)

		from := start
		if bucket.After(from) {
			from = bucket
		}
		to := end
		if bucketEnd.Before(to) {
			to = bucketEnd
		}

		if minutes := to.Sub(from).Minutes(); minutes > 0 {
			out = append(out, Contribution{BucketStart: bucket, Minutes: minutes})
		}
	}

	return out, nil
}
