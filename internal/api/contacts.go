package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amistack/amistack/internal/core"
	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
	"github.com/amistack/amistack/internal/validation"
)

func urlID(r *http.Request, name string) uint {
	id, _ := strconv.Atoi(chi.URLParam(r, name))
	if id < 0 {
		return 0
	}
	return uint(id)
}

type contactRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Status    string   `json:"status"`
	LeadScore int      `json:"lead_score"`
	Source    string   `json:"source"`
	Notes     string   `json:"notes"`
	CompanyID *uint    `json:"company_id"`
	Tags      []string `json:"tags"`
}

func validateContact(req *contactRequest) *validation.Validator {
	v := validation.New().
		Required("first_name", req.FirstName).
		MaxLength("first_name", req.FirstName, 100).
		MaxLength("last_name", req.LastName, 100).
		OptionalEmail("email", req.Email).
		IntRange("lead_score", req.LeadScore, 0, 100).
		NoScriptTags("notes", req.Notes)
	if req.Status != "" {
		v.OneOf("status", req.Status, models.ContactStatuses)
	}
	return v
}

// GET /api/contacts
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	contacts, err := s.Store.ListContacts(user.ID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// POST /api/contacts
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if v := validateContact(&req); !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusNew
	}
	source := req.Source
	if source == "" {
		source = "manual"
	}

	contact := &models.Contact{
		UserID:    user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    status,
		LeadScore: req.LeadScore,
		Source:    source,
		Notes:     req.Notes,
		CompanyID: req.CompanyID,
	}
	tags, err := s.resolveTags(user.ID, req.Tags)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to resolve tags")
		return
	}
	if err := s.Store.CreateContactWithTags(contact, tags); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create contact")
		return
	}

	contact.Tags = tags
	writeJSON(w, http.StatusCreated, contact)
}

// GET /api/contacts/{contactID}
func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	contact, err := s.Store.GetContact(user.ID, urlID(r, "contactID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load contact")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// PUT /api/contacts/{contactID}
// Saves field changes and the replacement tag set in one transaction.
func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	contact, err := s.Store.GetContact(user.ID, urlID(r, "contactID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load contact")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if v := validateContact(&req); !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone
	if req.Status != "" {
		contact.Status = req.Status
	}
	contact.LeadScore = req.LeadScore
	contact.Source = req.Source
	contact.Notes = req.Notes
	contact.CompanyID = req.CompanyID

	tags, err := s.resolveTags(user.ID, req.Tags)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to resolve tags")
		return
	}
	if err := s.Store.UpdateContactWithTags(contact, tags); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to update contact")
		return
	}

	contact.Tags = tags
	writeJSON(w, http.StatusOK, contact)
}

// DELETE /api/contacts/{contactID}
func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeleteContact(user.ID, urlID(r, "contactID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete contact")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// POST /api/contacts/{contactID}/rescore
func (s *Server) handleRescoreContact(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	contact, err := s.Store.GetContact(user.ID, urlID(r, "contactID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load contact")
		return
	}

	if err := core.RescoreContact(s.Store, contact); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to rescore contact")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"lead_score": contact.LeadScore})
}

// resolveTags finds or creates the tenant's tags for the given names.
func (s *Server) resolveTags(userID uint, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		t, err := s.Store.FindOrCreateTag(userID, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}
	return tags, nil
}
