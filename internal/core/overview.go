package core

import (
	"time"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

// OverviewInput carries every raw number the overview needs, so the
// reduction itself stays a pure function.
type OverviewInput struct {
	TotalContacts      int64
	NewContacts        int64
	ActiveContacts     int64
	ByStatus           []store.StatusCount
	TotalInteractions  int64
	RecentInteractions int64
	ByType             []store.TypeCount
	TotalForms         int64
	TotalSubmissions   int64
	RecentSubmissions  int64
	AvgLeadScore       float64
}

type Overview struct {
	Period       int                  `json:"period"`
	Contacts     OverviewContacts     `json:"contacts"`
	Interactions OverviewInteractions `json:"interactions"`
	Forms        OverviewForms        `json:"forms"`
	Metrics      OverviewMetrics      `json:"metrics"`
}

type OverviewContacts struct {
	Total    int64               `json:"total"`
	New      int64               `json:"new"`
	ByStatus []store.StatusCount `json:"byStatus"`
}

type OverviewInteractions struct {
	Total  int64             `json:"total"`
	Recent int64             `json:"recent"`
	ByType []store.TypeCount `json:"byType"`
}

type OverviewForms struct {
	Total             int64 `json:"total"`
	Submissions       int64 `json:"submissions"`
	RecentSubmissions int64 `json:"recentSubmissions"`
}

type OverviewMetrics struct {
	ConversionRate float64 `json:"conversionRate"`
	AvgLeadScore   float64 `json:"avgLeadScore"`
}

// BuildOverview reduces the raw counts into the dashboard summary.
// Conversion rate is active/total contacts; both it and the average
// lead score fall back to 0 when there are no contacts.
func BuildOverview(period int, in OverviewInput) Overview {
	conv := 0.0
	if in.TotalContacts > 0 {
		conv = Round2(float64(in.ActiveContacts) / float64(in.TotalContacts) * 100)
	}

	byStatus := in.ByStatus
	if byStatus == nil {
		byStatus = []store.StatusCount{}
	}
	byType := in.ByType
	if byType == nil {
		byType = []store.TypeCount{}
	}

	return Overview{
		Period: period,
		Contacts: OverviewContacts{
			Total:    in.TotalContacts,
			New:      in.NewContacts,
			ByStatus: byStatus,
		},
		Interactions: OverviewInteractions{
			Total:  in.TotalInteractions,
			Recent: in.RecentInteractions,
			ByType: byType,
		},
		Forms: OverviewForms{
			Total:             in.TotalForms,
			Submissions:       in.TotalSubmissions,
			RecentSubmissions: in.RecentSubmissions,
		},
		Metrics: OverviewMetrics{
			ConversionRate: conv,
			AvgLeadScore:   Round2(in.AvgLeadScore),
		},
	}
}

// FetchOverviewInput runs every overview query for the window.
func FetchOverviewInput(st *store.Store, userID uint, since time.Time) (OverviewInput, error) {
	var in OverviewInput
	var err error

	if in.TotalContacts, err = st.CountContacts(userID); err != nil {
		return in, err
	}
	if in.NewContacts, err = st.CountContactsSince(userID, since); err != nil {
		return in, err
	}
	if in.ActiveContacts, err = st.CountContactsByStatus(userID, models.StatusActive); err != nil {
		return in, err
	}
	if in.ByStatus, err = st.ContactStatusCounts(userID); err != nil {
		return in, err
	}
	if in.TotalInteractions, err = st.CountInteractions(userID); err != nil {
		return in, err
	}
	if in.RecentInteractions, err = st.CountInteractionsSince(userID, since); err != nil {
		return in, err
	}
	if in.ByType, err = st.InteractionTypeCounts(userID); err != nil {
		return in, err
	}
	if in.TotalForms, err = st.CountForms(userID); err != nil {
		return in, err
	}
	if in.TotalSubmissions, err = st.CountSubmissions(userID); err != nil {
		return in, err
	}
	if in.RecentSubmissions, err = st.CountSubmissionsSince(userID, since); err != nil {
		return in, err
	}
	if in.AvgLeadScore, err = st.AvgLeadScore(userID); err != nil {
		return in, err
	}
	return in, nil
}
