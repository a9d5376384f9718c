package api

import (
	"encoding/json"
	"net/http"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
	"github.com/amistack/amistack/internal/validation"
)

type workflowRequest struct {
	Name        string `json:"name"`
	TriggerType string `json:"trigger_type"`
	Actions     string `json:"actions"`
	IsActive    *bool  `json:"is_active"`
}

var workflowTriggers = []string{"form_submission", "contact_created", "score_threshold"}

// GET /api/workflows
func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	wfs, err := s.Store.ListWorkflows(user.ID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list workflows")
		return
	}
	writeJSON(w, http.StatusOK, wfs)
}

// POST /api/workflows
func (s *Server) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req workflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().
		Required("name", req.Name).
		Required("trigger_type", req.TriggerType).
		OneOf("trigger_type", req.TriggerType, workflowTriggers)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	wf := &models.Workflow{
		UserID:      user.ID,
		Name:        req.Name,
		TriggerType: req.TriggerType,
		Actions:     req.Actions,
		IsActive:    true,
	}
	if req.IsActive != nil {
		wf.IsActive = *req.IsActive
	}

	if err := s.Store.CreateWorkflow(wf); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create workflow")
		return
	}
	writeJSON(w, http.StatusCreated, wf)
}

// GET /api/workflows/{workflowID}
func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	wf, err := s.Store.GetWorkflow(user.ID, urlID(r, "workflowID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "workflow not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load workflow")
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

// PUT /api/workflows/{workflowID}
func (s *Server) handleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	wf, err := s.Store.GetWorkflow(user.ID, urlID(r, "workflowID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "workflow not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load workflow")
		return
	}

	var req workflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().Required("name", req.Name)
	if req.TriggerType != "" {
		v.OneOf("trigger_type", req.TriggerType, workflowTriggers)
	}
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	wf.Name = req.Name
	if req.TriggerType != "" {
		wf.TriggerType = req.TriggerType
	}
	wf.Actions = req.Actions
	if req.IsActive != nil {
		wf.IsActive = *req.IsActive
	}

	if err := s.Store.UpdateWorkflow(wf); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to update workflow")
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

// DELETE /api/workflows/{workflowID}
func (s *Server) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeleteWorkflow(user.ID, urlID(r, "workflowID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "workflow not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete workflow")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
