package heatmap

import (
	"github.com/joycelim/callheat/internal/core/constants"
)

// Cell is one weekday × hour slot of the grid. Weekday follows the
// Sunday-first convention: 0=Sunday through 6=Saturday, which is what
// time.Weekday already yields. A nil minutes pointer means no call ever
// touched the slot, which is distinct from an observed zero.
type Cell struct {
	Weekday int      `json:"weekday"`
	Hour    int      `json:"hour"`
	Local   *float64 `json:"localMinutes"`
	Remote  *float64 `json:"remoteMinutes"`
}

// WeekGrid is the complete 7×24 aggregation, always 168 cells in
// weekday-major then hour order regardless of how sparse the input was.
type WeekGrid struct {
	Cells []Cell `json:"cells"`
}

type gridKey struct {
	weekday int
	hour    int
}

func sumByCell(contributions []Contribution) map[gridKey]float64 {
	sums := make(map[gridKey]float64)
	for _, c := range contributions {
		key := gridKey{
			weekday: int(c.BucketStart.Weekday()),
			hour:    c.BucketStart.Hour(),
		}
		sums[key] += c.Minutes
	}
	return sums
}

// BuildGrid sums per-view contributions into the dense grid. Enumeration
// of the canonical key set is explicit so the output order never depends
// on map iteration.
func BuildGrid(local, remote []Contribution) *WeekGrid {
	localSums := sumByCell(local)
	remoteSums := sumByCell(remote)

	grid := &WeekGrid{Cells: make([]Cell, 0, constants.GridCellCount)}
	for weekday := 0; weekday < constants.DaysPerWeek; weekday++ {
		for hour := 0; hour < constants.HoursPerDay; hour++ {
			cell := Cell{Weekday: weekday, Hour: hour}
			key := gridKey{weekday: weekday, hour: hour}
			if minutes, ok := localSums[key]; ok {
				cell.Local = &minutes
			}
			if minutes, ok := remoteSums[key]; ok {
				cell.Remote = &minutes
			}
			grid.Cells = append(grid.Cells, cell)
		}
	}
	return grid
}

// Cell returns the slot for the given weekday and hour, or nil when out
// of range.
func (g *WeekGrid) Cell(weekday, hour int) *Cell {
	if weekday < 0 || weekday >= constants.DaysPerWeek || hour < 0 || hour >= constants.HoursPerDay {
		return nil
	}
	return &g.Cells[weekday*constants.HoursPerDay+hour]
}
