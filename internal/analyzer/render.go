package analyzer

import (
	"fmt"
	"strings"

	"github.com/joycelim/callheat/internal/core/constants"
	"github.com/joycelim/callheat/internal/presentation/formatter"
	"github.com/joycelim/callheat/internal/util"
)

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// noData marks grid cells no call ever touched, as opposed to "0".
const noData = "·"

func overviewReport(o Overview) *formatter.Report {
	rows := [][]string{
		{"Total Calls", fmt.Sprintf("%d", o.TotalCalls)},
		{"Total Minutes", util.FormatMinutes(o.TotalMinutes)},
		{"Total Hours", fmt.Sprintf("%.1f", o.TotalHours)},
		{"Avg Call Duration (min)", util.FormatMinutes(o.AvgMinutes)},
		{"Median Call Duration (min)", util.FormatMinutes(o.MedianMinutes)},
		{"Max Call Duration (min)", util.FormatMinutes(o.MaxMinutes)},
	}
	return &formatter.Report{
		Title: "Overview",
		Sections: []formatter.Section{
			{Headers: []string{"Metric", "Value"}, Rows: rows},
		},
		Payload: o,
	}
}

func gridSection(title string, report *HeatmapReport, view string) formatter.Section {
	headers := make([]string, 0, constants.HoursPerDay+1)
	headers = append(headers, "Day")
	for hour := 0; hour < constants.HoursPerDay; hour++ {
		headers = append(headers, fmt.Sprintf("%02d", hour))
	}

	rows := make([][]string, 0, constants.DaysPerWeek)
	for weekday := 0; weekday < constants.DaysPerWeek; weekday++ {
		row := make([]string, 0, constants.HoursPerDay+1)
		row = append(row, dayNames[weekday])
		for hour := 0; hour < constants.HoursPerDay; hour++ {
			cell := report.Grid.Cell(weekday, hour)
			minutes := cell.Local
			if view == "remote" {
				minutes = cell.Remote
			}
			if minutes == nil {
				row = append(row, noData)
			} else {
				row = append(row, util.FormatMinutes(*minutes))
			}
		}
		rows = append(rows, row)
	}

	return formatter.Section{Title: title, Headers: headers, Rows: rows}
}

func heatmapReport(report *HeatmapReport) *formatter.Report {
	return &formatter.Report{
		Title: "Favourite Time To Talk",
		Sections: []formatter.Section{
			gridSection(fmt.Sprintf("Local (%s)", report.LocalZone), report, "local"),
			gridSection(fmt.Sprintf("Remote (%s)", report.RemoteZone), report, "remote"),
		},
		Payload: report,
	}
}

func calendarReport(days []CalendarDay, limit int) *formatter.Report {
	shown := days
	if limit > 0 && len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}

	rows := make([][]string, 0, len(shown))
	for _, day := range shown {
		rows = append(rows, []string{
			day.Date,
			dayNames[day.Weekday],
			day.WeekStart,
			util.FormatMinutes(day.LocalMinutes),
			util.FormatMinutes(day.RemoteMinutes),
		})
	}

	return &formatter.Report{
		Title: "Call Calendar",
		Sections: []formatter.Section{
			{Headers: []string{"Date", "Day", "Week Start", "Local Min", "Remote Min"}, Rows: rows},
		},
		Payload: days,
	}
}

func trendReport(points []TrendPoint, interval, metric string) *formatter.Report {
	metricTitle := "Total Minutes"
	if metric == "average" {
		metricTitle = "Avg Minutes"
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Interval, util.FormatMinutes(p.Minutes)})
	}

	intervalTitle := strings.ToUpper(interval[:1]) + interval[1:]
	return &formatter.Report{
		Title: "Call Duration Trend",
		Sections: []formatter.Section{
			{Headers: []string{intervalTitle, metricTitle}, Rows: rows},
		},
		Payload: points,
	}
}

func distributionReport(bins []DistributionBin) *formatter.Report {
	rows := make([][]string, 0, len(bins))
	for _, bin := range bins {
		rows = append(rows, []string{
			fmt.Sprintf("%.0f-%.0f", bin.From, bin.To),
			fmt.Sprintf("%d", bin.Count),
		})
	}

	return &formatter.Report{
		Title: "Call Duration Distribution",
		Sections: []formatter.Section{
			{Headers: []string{"Duration (min)", "Calls"}, Rows: rows},
		},
		Payload: bins,
	}
}
