package core

import (
	"testing"

	"github.com/amistack/amistack/internal/store"
)

func TestBuildOverviewConversionRate(t *testing.T) {
	// 10 contacts total, 4 active -> 40.00
	out := BuildOverview(30, OverviewInput{
		TotalContacts:  10,
		ActiveContacts: 4,
	})

	if out.Metrics.ConversionRate != 40 {
		t.Errorf("ConversionRate = %v, want 40", out.Metrics.ConversionRate)
	}
	if out.Period != 30 {
		t.Errorf("Period = %d, want 30", out.Period)
	}
}

func TestBuildOverviewZeroGuards(t *testing.T) {
	out := BuildOverview(7, OverviewInput{})

	if out.Metrics.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0", out.Metrics.ConversionRate)
	}
	if out.Metrics.AvgLeadScore != 0 {
		t.Errorf("AvgLeadScore = %v, want 0", out.Metrics.AvgLeadScore)
	}
	// Group-by slices serialize as [] rather than null
	if out.Contacts.ByStatus == nil {
		t.Error("ByStatus is nil, want empty slice")
	}
	if out.Interactions.ByType == nil {
		t.Error("ByType is nil, want empty slice")
	}
}

func TestBuildOverviewGroupSums(t *testing.T) {
	byStatus := []store.StatusCount{
		{Status: "new", Count: 3},
		{Status: "active", Count: 4},
		{Status: "lost", Count: 3},
	}
	byType := []store.TypeCount{
		{Type: "call", Count: 5},
		{Type: "email", Count: 7},
	}

	out := BuildOverview(30, OverviewInput{
		TotalContacts:     10,
		ActiveContacts:    4,
		ByStatus:          byStatus,
		TotalInteractions: 12,
		ByType:            byType,
		AvgLeadScore:      41.666,
	})

	var statusSum int64
	for _, sc := range out.Contacts.ByStatus {
		statusSum += sc.Count
	}
	if statusSum != out.Contacts.Total {
		t.Errorf("byStatus sum = %d, want %d", statusSum, out.Contacts.Total)
	}

	var typeSum int64
	for _, tc := range out.Interactions.ByType {
		typeSum += tc.Count
	}
	if typeSum != out.Interactions.Total {
		t.Errorf("byType sum = %d, want %d", typeSum, out.Interactions.Total)
	}

	if out.Metrics.AvgLeadScore != 41.67 {
		t.Errorf("AvgLeadScore = %v, want 41.67", out.Metrics.AvgLeadScore)
	}
}
