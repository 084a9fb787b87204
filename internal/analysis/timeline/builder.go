// Package timeline turns sparse mood entries into the fixed seven day series
// rendered by the dashboard chart.
package timeline

import (
	"time"

	"github.com/zhouzirui/serene/backend/internal/model/mood"
)

const (
	// WindowDays is the number of points in every timeline.
	WindowDays = 7
	// NoData marks a point with no recorded entry.
	NoData = "no data"

	dayLayout   = "2006-01-02"
	labelLayout = "Jan 02"
)

// Point is one calendar day of the chart.
type Point struct {
	Date        string  `json:"date"`
	Label       string  `json:"label"`
	Value       float64 `json:"value"`
	Mood        string  `json:"mood"`
	Notes       string  `json:"notes"`
	Placeholder bool    `json:"placeholder"`
}

var moodValues = map[string]float64{
	mood.Great:    5,
	mood.Good:     4,
	mood.Okay:     3,
	mood.Down:     2,
	"sad":         2,
	mood.Stressed: 1,
	"terrible":    1,
}

const unknownMoodValue = 3

// Value maps a mood label to its chart value. Unrecognised labels chart as "okay".
func Value(label string) float64 {
	if v, ok := moodValues[label]; ok {
		return v
	}
	return unknownMoodValue
}

// PlaceholderValue is the value charted for a day without entries.
func PlaceholderValue(day time.Weekday) float64 {
	switch day {
	case time.Saturday, time.Sunday:
		return 4
	case time.Wednesday:
		return 2.5
	default:
		return 3
	}
}

// Build returns WindowDays points, oldest first, ending on today's calendar
// day in today's location. Each day takes the first entry in input order that
// falls on it; days without one get a weekday placeholder.
func Build(today time.Time, entries []mood.Entry) []Point {
	loc := today.Location()
	start := WindowStart(today)

	first := make(map[string]mood.Entry, WindowDays)
	for _, entry := range entries {
		key := entry.Timestamp.In(loc).Format(dayLayout)
		if _, seen := first[key]; !seen {
			first[key] = entry
		}
	}

	points := make([]Point, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		day := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, loc)
		key := day.Format(dayLayout)

		point := Point{Date: key, Label: day.Format(labelLayout)}
		if entry, ok := first[key]; ok {
			point.Value = Value(entry.Mood)
			point.Mood = entry.Mood
			point.Notes = entry.Notes
		} else {
			point.Value = PlaceholderValue(day.Weekday())
			point.Mood = NoData
			point.Placeholder = true
		}
		points = append(points, point)
	}
	return points
}

// WindowStart returns local midnight of the oldest day covered by Build(today, ...).
func WindowStart(today time.Time) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d-(WindowDays-1), 0, 0, 0, 0, today.Location())
}
