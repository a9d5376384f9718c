package core

import (
	"math"
	"time"

	"github.com/amistack/amistack/internal/store"
)

// Score thresholds used by the funnel predicates.
const (
	QualifiedScore = 50
	ClientScore    = 80
)

// FunnelCounts holds the five stage cohort sizes for a window. Each
// stage counts its own independently-filtered population; the stages
// do NOT track the same leads narrowing down. That is the documented
// product behavior and must not be "fixed" here.
type FunnelCounts struct {
	Captured  int64 // form submissions in window
	Contacted int64 // contacts created in window
	Qualified int64 // window contacts with lead_score >= QualifiedScore
	Active    int64 // window contacts with status active
	Client    int64 // window contacts active with lead_score >= ClientScore
}

type FunnelStage struct {
	Stage      string  `json:"stage"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DropOffRate struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

type FunnelReport struct {
	Funnel         []FunnelStage `json:"funnel"`
	DropOffRates   []DropOffRate `json:"dropOffRates"`
	ConversionRate float64       `json:"conversionRate"`
}

var stageNames = []string{"Captured", "Contacted", "Qualified", "Active", "Client"}

// BuildFunnelReport derives stage percentages, drop-off rates, and the
// overall conversion rate from raw cohort counts. The first stage is
// pinned at 100%; every percentage is relative to the previous stage's
// count and defined as 0 when that count is 0.
func BuildFunnelReport(c FunnelCounts) FunnelReport {
	counts := []int64{c.Captured, c.Contacted, c.Qualified, c.Active, c.Client}

	stages := make([]FunnelStage, len(counts))
	for i, n := range counts {
		pct := 100.0
		if i > 0 {
			prev := counts[i-1]
			if prev == 0 {
				pct = 0
			} else {
				pct = Round2(float64(n) / float64(prev) * 100)
			}
		}
		stages[i] = FunnelStage{Stage: stageNames[i], Count: n, Percentage: pct}
	}

	drops := make([]DropOffRate, 0, len(counts)-1)
	for i := 1; i < len(counts); i++ {
		rate := 0.0
		if counts[i-1] > 0 {
			rate = Round2(float64(counts[i-1]-counts[i]) / float64(counts[i-1]) * 100)
		}
		drops = append(drops, DropOffRate{
			From: stageNames[i-1],
			To:   stageNames[i],
			Rate: rate,
		})
	}

	conversion := 0.0
	if c.Captured > 0 {
		conversion = Round2(float64(c.Client) / float64(c.Captured) * 100)
	}

	return FunnelReport{Funnel: stages, DropOffRates: drops, ConversionRate: conversion}
}

// FetchFunnelCounts runs the five cohort queries for the window.
func FetchFunnelCounts(st *store.Store, userID uint, since time.Time) (FunnelCounts, error) {
	var c FunnelCounts
	var err error

	if c.Captured, err = st.CountSubmissionsSince(userID, since); err != nil {
		return c, err
	}
	if c.Contacted, err = st.CountContactsSince(userID, since); err != nil {
		return c, err
	}
	if c.Qualified, err = st.CountQualifiedSince(userID, since, QualifiedScore); err != nil {
		return c, err
	}
	if c.Active, err = st.CountActiveSince(userID, since); err != nil {
		return c, err
	}
	if c.Client, err = st.CountClientsSince(userID, since, ClientScore); err != nil {
		return c, err
	}
	return c, nil
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
