package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
	"github.com/amistack/amistack/internal/validation"
)

type formRequest struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Fields         string `json:"fields"`
	SubmitLabel    string `json:"submit_label"`
	SuccessMessage string `json:"success_message"`
	IsActive       *bool  `json:"is_active"`
	CreateContact  *bool  `json:"create_contact"`
}

// GET /api/forms
func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	forms, err := s.Store.ListForms(user.ID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list forms")
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// POST /api/forms
func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().
		Required("name", req.Name).
		Required("slug", req.Slug).
		Slug("slug", req.Slug)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	form := &models.Form{
		UserID:         user.ID,
		Name:           req.Name,
		Slug:           req.Slug,
		Fields:         req.Fields,
		SubmitLabel:    req.SubmitLabel,
		SuccessMessage: req.SuccessMessage,
		IsActive:       true,
		CreateContact:  true,
	}
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}
	if req.CreateContact != nil {
		form.CreateContact = *req.CreateContact
	}

	if err := s.Store.CreateForm(form); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create form")
		return
	}
	writeJSON(w, http.StatusCreated, form)
}

// GET /api/forms/{formID}
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	form, err := s.Store.GetForm(user.ID, urlID(r, "formID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "form not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load form")
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// PUT /api/forms/{formID}
func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	form, err := s.Store.GetForm(user.ID, urlID(r, "formID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "form not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load form")
		return
	}

	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().Required("name", req.Name)
	if req.Slug != "" {
		v.Slug("slug", req.Slug)
	}
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	form.Name = req.Name
	if req.Slug != "" {
		form.Slug = req.Slug
	}
	form.Fields = req.Fields
	form.SubmitLabel = req.SubmitLabel
	form.SuccessMessage = req.SuccessMessage
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}
	if req.CreateContact != nil {
		form.CreateContact = *req.CreateContact
	}

	if err := s.Store.UpdateForm(form); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to update form")
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// DELETE /api/forms/{formID}
func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeleteForm(user.ID, urlID(r, "formID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "form not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete form")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/forms/{formID}/submissions
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	subs, err := s.Store.ListSubmissions(user.ID, urlID(r, "formID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "form not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// ----------------------
// Public submit
// ----------------------

type submittedField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// POST /api/public/forms/{slug}/submit
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	form, err := s.Store.GetFormBySlug(slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "form not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load form")
		return
	}
	if !form.IsActive {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	var req struct {
		Fields []submittedField `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Fields) == 0 {
		writeError(w, http.StatusBadRequest, "fields is required")
		return
	}

	raw, _ := json.Marshal(req.Fields)
	sub := &models.FormSubmission{
		FormID:    form.ID,
		Fields:    string(raw),
		VisitorIP: r.RemoteAddr,
	}
	if err := s.Store.CreateSubmission(sub); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to store submission")
		return
	}

	// Auto-create a CRM contact from the submitted fields. A failure
	// here never fails the submission itself; it is logged and ignored.
	if form.CreateContact {
		if err := s.createContactFromSubmission(form, req.Fields); err != nil {
			log.Printf("form %s: contact auto-create failed: %v", form.Slug, err)
		}
	}

	msg := form.SuccessMessage
	if msg == "" {
		msg = "Obrigado! Recebemos seus dados."
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"submission_id": sub.ID,
		"message":       msg,
	})
}

// createContactFromSubmission maps well-known field labels to a new
// contact for the form's owner. Existing contacts (by email) are left
// untouched except for a "form" tag.
func (s *Server) createContactFromSubmission(form *models.Form, fields []submittedField) error {
	var name, email, phone string
	for _, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f.Label)) {
		case "name", "nome", "full name":
			name = f.Value
		case "email", "e-mail":
			email = f.Value
		case "phone", "telefone", "whatsapp":
			phone = f.Value
		}
	}
	if email == "" && name == "" {
		return nil // nothing identifiable to create
	}

	if email != "" {
		if _, err := s.Store.FindContactByEmail(form.UserID, email); err == nil {
			return nil
		} else if err != store.ErrNotFound {
			return err
		}
	}

	first, last := splitName(name)
	contact := &models.Contact{
		UserID:    form.UserID,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Status:    models.StatusNew,
		Source:    "form",
	}
	if err := s.Store.CreateContact(contact); err != nil {
		return err
	}

	tag, err := s.Store.FindOrCreateTag(form.UserID, form.Name)
	if err != nil {
		return err
	}
	return s.Store.DB.Model(contact).Association("Tags").Append(tag)
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
