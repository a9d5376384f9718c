package core

import (
	"log"
	"time"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

// Source base weights. Unknown sources score like manual entries.
var sourceWeights = map[string]int{
	"form":    30,
	"chatbot": 25,
	"manual":  20,
	"import":  10,
}

// Interaction weights by type. Unlisted types count as notes.
var interactionWeights = map[string]int{
	"meeting":  8,
	"call":     5,
	"email":    3,
	"whatsapp": 3,
	"note":     2,
}

// ScoreInput is everything the lead score derives from.
type ScoreInput struct {
	Source          string
	Interactions    []models.Interaction
	SubmissionCount int64
	Now             time.Time
}

// ComputeLeadScore derives a 0-100 score: a base from the contact's
// source, weighted interaction activity, submissions, and a recency
// adjustment. The result is always clamped to [0, 100].
func ComputeLeadScore(in ScoreInput) int {
	score, ok := sourceWeights[in.Source]
	if !ok {
		score = sourceWeights["manual"]
	}

	var lastTouch time.Time
	for _, it := range in.Interactions {
		w, ok := interactionWeights[it.Type]
		if !ok {
			w = interactionWeights["note"]
		}
		score += w
		if it.CreatedAt.After(lastTouch) {
			lastTouch = it.CreatedAt
		}
	}

	score += int(in.SubmissionCount) * 5

	// Recency: reward a touch within 7 days, penalize silence past 30
	if !lastTouch.IsZero() {
		age := in.Now.Sub(lastTouch)
		if age <= 7*24*time.Hour {
			score += 10
		} else if age > 30*24*time.Hour {
			score -= 10
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RescoreContact recomputes and persists one contact's lead score.
func RescoreContact(st *store.Store, c *models.Contact) error {
	interactions, err := st.ListInteractions(c.UserID, c.ID)
	if err != nil {
		return err
	}

	// Per-contact submissions are not tracked; a form-sourced contact
	// counts as one captured submission.
	var subs int64
	if c.Source == "form" {
		subs = 1
	}

	c.LeadScore = ComputeLeadScore(ScoreInput{
		Source:          c.Source,
		Interactions:    interactions,
		SubmissionCount: subs,
		Now:             time.Now(),
	})
	return st.UpdateContact(c)
}

// RescoreAllContacts runs the scoring pipeline over every contact.
// Called by the daily scheduler; individual failures are logged and
// skipped so one bad row cannot stall the batch.
func RescoreAllContacts(st *store.Store) error {
	var contacts []models.Contact
	if err := st.DB.Find(&contacts).Error; err != nil {
		return err
	}
	for i := range contacts {
		if err := RescoreContact(st, &contacts[i]); err != nil {
			log.Printf("rescore contact %d: %v", contacts[i].ID, err)
		}
	}
	return nil
}
