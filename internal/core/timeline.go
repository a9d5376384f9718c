package core

import (
	"time"
)

// TimelinePoint is one calendar day of activity.
type TimelinePoint struct {
	Date         string `json:"date"` // YYYY-MM-DD (UTC)
	Contacts     int64  `json:"contacts"`
	Interactions int64  `json:"interactions"`
	Submissions  int64  `json:"submissions"`
}

const dayFormat = "2006-01-02"

// TimelineWindowStart returns the start of the earliest UTC calendar
// day that BuildTimeline buckets for the same end and days. Event
// queries must use this as their lower bound so that every fetched
// event lands in a bucket and the daily sums match the window totals.
func TimelineWindowStart(end time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return end.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))
}

// BuildTimeline buckets the three event streams by UTC calendar day
// over a window ending at `end` (inclusive) and spanning `days` days.
// Every day in the window appears, zero-filled when no stream has
// activity, so charts render a continuous series.
func BuildTimeline(end time.Time, days int, contacts, interactions, submissions []time.Time) []TimelinePoint {
	if days < 1 {
		days = 1
	}

	byDay := make(map[string]*TimelinePoint, days)
	endDay := end.UTC().Truncate(24 * time.Hour)

	points := make([]TimelinePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := endDay.AddDate(0, 0, -i).Format(dayFormat)
		points = append(points, TimelinePoint{Date: d})
		byDay[d] = &points[len(points)-1]
	}

	bump := func(ts []time.Time, add func(*TimelinePoint)) {
		for _, t := range ts {
			if p, ok := byDay[t.UTC().Format(dayFormat)]; ok {
				add(p)
			}
		}
	}
	bump(contacts, func(p *TimelinePoint) { p.Contacts++ })
	bump(interactions, func(p *TimelinePoint) { p.Interactions++ })
	bump(submissions, func(p *TimelinePoint) { p.Submissions++ })

	return points
}
