package core

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02T15:04:05", s)
	return t.UTC()
}

func TestBuildTimelineZeroFill(t *testing.T) {
	end := day("2025-03-10T12:00:00")

	points := BuildTimeline(end, 7, nil, nil, nil)
	if len(points) != 7 {
		t.Fatalf("expected 7 days, got %d", len(points))
	}
	if points[0].Date != "2025-03-04" {
		t.Errorf("first day = %s, want 2025-03-04", points[0].Date)
	}
	if points[6].Date != "2025-03-10" {
		t.Errorf("last day = %s, want 2025-03-10", points[6].Date)
	}
	for _, p := range points {
		if p.Contacts != 0 || p.Interactions != 0 || p.Submissions != 0 {
			t.Errorf("expected zero-filled day, got %+v", p)
		}
	}
}

func TestBuildTimelineBucketing(t *testing.T) {
	end := day("2025-03-10T23:59:59")

	contacts := []time.Time{
		day("2025-03-08T09:00:00"),
		day("2025-03-08T17:30:00"),
		day("2025-03-10T01:00:00"),
	}
	interactions := []time.Time{
		day("2025-03-09T10:00:00"),
	}
	submissions := []time.Time{
		day("2025-03-08T09:00:01"),
		day("2025-03-10T22:00:00"),
	}

	points := BuildTimeline(end, 7, contacts, interactions, submissions)

	byDate := map[string]TimelinePoint{}
	for _, p := range points {
		byDate[p.Date] = p
	}

	if got := byDate["2025-03-08"]; got.Contacts != 2 || got.Submissions != 1 {
		t.Errorf("2025-03-08 = %+v, want 2 contacts 1 submission", got)
	}
	if got := byDate["2025-03-09"]; got.Interactions != 1 {
		t.Errorf("2025-03-09 = %+v, want 1 interaction", got)
	}
	if got := byDate["2025-03-10"]; got.Contacts != 1 || got.Submissions != 1 {
		t.Errorf("2025-03-10 = %+v, want 1 contact 1 submission", got)
	}

	// Sum over the window equals the stream totals
	var sumC, sumI, sumS int64
	for _, p := range points {
		sumC += p.Contacts
		sumI += p.Interactions
		sumS += p.Submissions
	}
	if sumC != int64(len(contacts)) {
		t.Errorf("contact sum = %d, want %d", sumC, len(contacts))
	}
	if sumI != int64(len(interactions)) {
		t.Errorf("interaction sum = %d, want %d", sumI, len(interactions))
	}
	if sumS != int64(len(submissions)) {
		t.Errorf("submission sum = %d, want %d", sumS, len(submissions))
	}
}

func TestBuildTimelineSorted(t *testing.T) {
	points := BuildTimeline(day("2025-06-01T00:00:00"), 30, nil, nil, nil)
	if len(points) != 30 {
		t.Fatalf("expected 30 days, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i-1].Date >= points[i].Date {
			t.Fatalf("timeline not sorted: %s >= %s", points[i-1].Date, points[i].Date)
		}
	}
}

func TestTimelineWindowStart(t *testing.T) {
	end := day("2025-03-10T12:00:00")

	since := TimelineWindowStart(end, 7)
	if want := day("2025-03-04T00:00:00"); !since.Equal(want) {
		t.Fatalf("window start = %v, want %v", since, want)
	}
	if got := TimelineWindowStart(end, 0); !got.Equal(day("2025-03-10T00:00:00")) {
		t.Errorf("days=0 window start = %v, want start of end day", got)
	}
}

// Every event at or after TimelineWindowStart must land in a bucket,
// including events from the partial day at the window edge, so that
// daily sums equal the per-stream window totals.
func TestBuildTimelineCoversQueryWindow(t *testing.T) {
	end := day("2025-03-10T12:00:00")
	since := TimelineWindowStart(end, 7)

	// First instant of the earliest day, early on the edge day,
	// mid-window, and the end instant itself.
	contacts := []time.Time{
		since,
		since.Add(time.Hour),
		end.Add(-30 * time.Hour),
		end,
	}
	for _, c := range contacts {
		if c.Before(since) {
			t.Fatalf("test event %v outside query window", c)
		}
	}

	points := BuildTimeline(end, 7, contacts, nil, nil)
	var sum int64
	for _, p := range points {
		sum += p.Contacts
	}
	if sum != int64(len(contacts)) {
		t.Fatalf("sum of daily contacts = %d, want %d", sum, len(contacts))
	}
}

func TestBuildTimelineMinimumWindow(t *testing.T) {
	points := BuildTimeline(day("2025-06-01T08:00:00"), 0, nil, nil, nil)
	if len(points) != 1 {
		t.Fatalf("expected window clamped to 1 day, got %d", len(points))
	}
}
