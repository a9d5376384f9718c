package core

import "testing"

func TestBuildFunnelReport(t *testing.T) {
	report := BuildFunnelReport(FunnelCounts{
		Captured:  200,
		Contacted: 100,
		Qualified: 40,
		Active:    30,
		Client:    12,
	})

	if len(report.Funnel) != 5 {
		t.Fatalf("expected 5 stages, got %d", len(report.Funnel))
	}

	// First stage is always pinned at 100%
	if report.Funnel[0].Percentage != 100 {
		t.Errorf("Captured percentage = %v, want 100", report.Funnel[0].Percentage)
	}

	// Each percentage is relative to the previous stage
	if report.Funnel[1].Percentage != 50 {
		t.Errorf("Contacted percentage = %v, want 50", report.Funnel[1].Percentage)
	}
	if report.Funnel[2].Percentage != 40 {
		t.Errorf("Qualified percentage = %v, want 40", report.Funnel[2].Percentage)
	}
	if report.Funnel[3].Percentage != 75 {
		t.Errorf("Active percentage = %v, want 75", report.Funnel[3].Percentage)
	}

	// Conversion: Client / Captured
	if report.ConversionRate != 6 {
		t.Errorf("ConversionRate = %v, want 6", report.ConversionRate)
	}

	// Drop-off between Captured and Contacted: 50%
	if report.DropOffRates[0].Rate != 50 {
		t.Errorf("drop-off rate = %v, want 50", report.DropOffRates[0].Rate)
	}
	if report.DropOffRates[0].From != "Captured" || report.DropOffRates[0].To != "Contacted" {
		t.Errorf("unexpected drop-off pair: %+v", report.DropOffRates[0])
	}
}

func TestBuildFunnelReportRounding(t *testing.T) {
	report := BuildFunnelReport(FunnelCounts{
		Captured:  3,
		Contacted: 1,
	})

	// 1/3 * 100 = 33.333... -> 33.33
	if report.Funnel[1].Percentage != 33.33 {
		t.Errorf("Contacted percentage = %v, want 33.33", report.Funnel[1].Percentage)
	}
	// Drop-off 2/3 * 100 = 66.666... -> 66.67
	if report.DropOffRates[0].Rate != 66.67 {
		t.Errorf("drop-off rate = %v, want 66.67", report.DropOffRates[0].Rate)
	}
}

func TestBuildFunnelReportEmptyWindow(t *testing.T) {
	report := BuildFunnelReport(FunnelCounts{})

	// No submissions: conversion is 0, never NaN or an error
	if report.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0", report.ConversionRate)
	}
	if report.Funnel[0].Percentage != 100 {
		t.Errorf("Captured percentage = %v, want 100", report.Funnel[0].Percentage)
	}
	for i, st := range report.Funnel[1:] {
		if st.Percentage != 0 {
			t.Errorf("stage %d percentage = %v, want 0", i+1, st.Percentage)
		}
	}
	for _, d := range report.DropOffRates {
		if d.Rate != 0 {
			t.Errorf("drop-off %s->%s rate = %v, want 0", d.From, d.To, d.Rate)
		}
	}
}

func TestBuildFunnelReportNonNegative(t *testing.T) {
	// Later cohorts can exceed earlier ones since they are counted
	// independently; percentages just go above 100, never negative.
	report := BuildFunnelReport(FunnelCounts{
		Captured:  5,
		Contacted: 10,
		Qualified: 2,
		Active:    8,
		Client:    1,
	})

	for _, st := range report.Funnel {
		if st.Count < 0 || st.Percentage < 0 {
			t.Errorf("stage %s has negative values: %+v", st.Stage, st)
		}
	}
	if report.Funnel[1].Percentage != 200 {
		t.Errorf("Contacted percentage = %v, want 200", report.Funnel[1].Percentage)
	}
}
