package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amistack/amistack/internal/core"
)

// periodDays parses ?period= with the dashboard default of 30 days,
// capped at a year.
func periodDays(r *http.Request) int {
	days := 30
	if d, err := strconv.Atoi(r.URL.Query().Get("period")); err == nil && d > 0 && d <= 365 {
		days = d
	}
	return days
}

func windowStart(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}

// GET /api/analytics/overview?period={days}
func (s *Server) handleAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	days := periodDays(r)

	in, err := core.FetchOverviewInput(s.Store, user.ID, windowStart(days))
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to compute overview")
		return
	}

	writeJSON(w, http.StatusOK, core.BuildOverview(days, in))
}

// GET /api/analytics/timeline?period={days}
func (s *Server) handleAnalyticsTimeline(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	days := periodDays(r)

	// The timeline buckets whole UTC calendar days, so the query bound
	// is the start of the earliest bucketed day rather than an exact
	// now-minus-days instant. Otherwise events from the partial day at
	// the edge would be fetched but never bucketed.
	end := time.Now()
	since := core.TimelineWindowStart(end, days)

	contacts, err := s.Store.ContactCreationTimes(user.ID, since)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to compute timeline")
		return
	}
	interactions, err := s.Store.InteractionTimes(user.ID, since)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to compute timeline")
		return
	}
	submissions, err := s.Store.SubmissionTimes(user.ID, since)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to compute timeline")
		return
	}

	timeline := core.BuildTimeline(end, days, contacts, interactions, submissions)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":   days,
		"timeline": timeline,
	})
}

// GET /api/analytics/funnel?period={days}
func (s *Server) handleAnalyticsFunnel(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	days := periodDays(r)

	counts, err := core.FetchFunnelCounts(s.Store, user.ID, windowStart(days))
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to compute funnel")
		return
	}

	report := core.BuildFunnelReport(counts)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":         days,
		"funnel":         report.Funnel,
		"dropOffRates":   report.DropOffRates,
		"conversionRate": report.ConversionRate,
	})
}

// GET /api/analytics/top-leads
func (s *Server) handleTopLeads(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	contacts, err := s.Store.TopContactsByScore(user.ID, 20)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list top leads")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}
