package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
	"github.com/amistack/amistack/internal/validation"
)

type interactionRequest struct {
	Type        string     `json:"type"`
	Subject     string     `json:"subject"`
	Notes       string     `json:"notes"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

var interactionTypes = []string{"call", "email", "meeting", "whatsapp", "note"}

// GET /api/contacts/{contactID}/interactions
func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	contactID := urlID(r, "contactID")

	if _, err := s.Store.GetContact(user.ID, contactID); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load contact")
		return
	}

	items, err := s.Store.ListInteractions(user.ID, contactID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list interactions")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /api/contacts/{contactID}/interactions
func (s *Server) handleCreateInteraction(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	contactID := urlID(r, "contactID")

	if _, err := s.Store.GetContact(user.ID, contactID); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load contact")
		return
	}

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	v := validation.New().
		Required("type", req.Type).
		OneOf("type", req.Type, interactionTypes).
		MaxLength("subject", req.Subject, 200)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	it := &models.Interaction{
		UserID:      user.ID,
		ContactID:   contactID,
		Type:        req.Type,
		Subject:     req.Subject,
		Notes:       req.Notes,
		ScheduledAt: req.ScheduledAt,
		CompletedAt: req.CompletedAt,
	}
	if err := s.Store.CreateInteraction(it); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create interaction")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

// PUT /api/interactions/{interactionID}
// Interactions only support full replacement, matching the immutable-
// except-replace lifecycle.
func (s *Server) handleUpdateInteraction(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	it, err := s.Store.GetInteraction(user.ID, urlID(r, "interactionID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "interaction not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load interaction")
		return
	}

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	v := validation.New().
		Required("type", req.Type).
		OneOf("type", req.Type, interactionTypes)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	it.Type = req.Type
	it.Subject = req.Subject
	it.Notes = req.Notes
	it.ScheduledAt = req.ScheduledAt
	it.CompletedAt = req.CompletedAt

	if err := s.Store.UpdateInteraction(it); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to update interaction")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// DELETE /api/interactions/{interactionID}
func (s *Server) handleDeleteInteraction(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeleteInteraction(user.ID, urlID(r, "interactionID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "interaction not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete interaction")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
