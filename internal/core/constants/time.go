package constants

import "time"

const (
	// MaxCallDuration caps a single call. Anything longer is treated as a
	// data-integrity problem in the source log, not a real call.
	MaxCallDuration = 24 * time.Hour

	// ViewDurationTolerance is how far the two time-zone projections of the
	// same call may disagree on duration before the record is rejected.
	ViewDurationTolerance = time.Second

	// MinuteEpsilon is the floating point tolerance used when comparing
	// minute totals.
	MinuteEpsilon = 1e-6

	// Grid dimensions for the weekday × hour-of-day aggregation.
	DaysPerWeek   = 7
	HoursPerDay   = 24
	GridCellCount = DaysPerWeek * HoursPerDay
)
