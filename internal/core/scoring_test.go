package core

import (
	"testing"
	"time"

	"github.com/amistack/amistack/internal/models"
)

func TestComputeLeadScoreBaseline(t *testing.T) {
	now := time.Now()

	// Bare manual contact: just the source base
	got := ComputeLeadScore(ScoreInput{Source: "manual", Now: now})
	if got != 20 {
		t.Errorf("manual baseline = %d, want 20", got)
	}

	// Unknown source scores like manual
	if got := ComputeLeadScore(ScoreInput{Source: "billboard", Now: now}); got != 20 {
		t.Errorf("unknown source = %d, want 20", got)
	}
}

func TestComputeLeadScoreClamped(t *testing.T) {
	now := time.Now()

	// Pile on meetings until the raw score passes 100
	var interactions []models.Interaction
	for i := 0; i < 30; i++ {
		interactions = append(interactions, models.Interaction{Type: "meeting", CreatedAt: now})
	}

	got := ComputeLeadScore(ScoreInput{
		Source:       "form",
		Interactions: interactions,
		Now:          now,
	})
	if got != 100 {
		t.Errorf("score = %d, want clamp at 100", got)
	}

	// Import source with a long-stale touch can dip below the base but
	// never below zero
	stale := ComputeLeadScore(ScoreInput{
		Source: "import",
		Interactions: []models.Interaction{
			{Type: "note", CreatedAt: now.Add(-90 * 24 * time.Hour)},
		},
		Now: now,
	})
	if stale < 0 {
		t.Errorf("score = %d, must not go negative", stale)
	}
}

func TestComputeLeadScoreRecency(t *testing.T) {
	now := time.Now()
	base := ScoreInput{
		Source: "manual",
		Interactions: []models.Interaction{
			{Type: "call", CreatedAt: now.Add(-2 * 24 * time.Hour)},
		},
		Now: now,
	}
	fresh := ComputeLeadScore(base)

	base.Interactions[0].CreatedAt = now.Add(-60 * 24 * time.Hour)
	stale := ComputeLeadScore(base)

	if fresh <= stale {
		t.Errorf("fresh touch (%d) should outscore stale touch (%d)", fresh, stale)
	}
}
