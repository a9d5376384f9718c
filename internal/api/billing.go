package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/amistack/amistack/internal/core"
	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

// subscriptionObject is the slice of the Stripe event payload we read.
type subscriptionObject struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Subscription     string `json:"subscription"` // set on checkout sessions
	Metadata         struct {
		UserID string `json:"user_id"`
		Plan   string `json:"plan"`
	} `json:"metadata"`
}

// POST /api/webhooks/stripe
//
// The only writer of Subscription rows. Unhandled event types are
// acknowledged with 200 so Stripe stops retrying them.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if err := core.VerifyStripeSignature(payload, sigHeader, s.WebhookSecret, time.Now()); err != nil {
		log.Printf("stripe webhook rejected: %v", err)
		writeError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	event, err := core.ParseStripeEvent(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	var obj subscriptionObject
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event object")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		err = s.applySubscriptionUpdate(&obj, "active")
	case "customer.subscription.updated":
		err = s.applySubscriptionUpdate(&obj, obj.Status)
	case "customer.subscription.deleted":
		err = s.applySubscriptionUpdate(&obj, "canceled")
	case "invoice.payment_failed":
		err = s.applySubscriptionUpdate(&obj, "past_due")
	default:
		// Not ours to handle; acknowledge anyway
	}

	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to apply event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}

func (s *Server) applySubscriptionUpdate(obj *subscriptionObject, status string) error {
	sub := &models.Subscription{
		StripeCustomerID:     obj.Customer,
		StripeSubscriptionID: obj.ID,
		Status:               status,
	}
	if obj.Subscription != "" {
		sub.StripeSubscriptionID = obj.Subscription
	}
	if obj.Metadata.Plan != "" {
		sub.Plan = obj.Metadata.Plan
	}
	if obj.CurrentPeriodEnd > 0 {
		sub.CurrentPeriodEnd = time.Unix(obj.CurrentPeriodEnd, 0)
	}
	if obj.Metadata.UserID != "" {
		if id, err := strconv.Atoi(obj.Metadata.UserID); err == nil && id > 0 {
			sub.UserID = uint(id)
		}
	}
	return s.Store.UpsertSubscription(sub)
}

// GET /api/billing/subscription
func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	sub, err := s.Store.GetSubscription(user.ID)
	if err != nil {
		if err == store.ErrNotFound {
			// No subscription yet: report the free plan instead of a 404
			writeJSON(w, http.StatusOK, map[string]string{"plan": "free", "status": "none"})
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load subscription")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
