package api

import (
	"encoding/json"
	"net/http"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
	"github.com/amistack/amistack/internal/validation"
)

type companyRequest struct {
	Name     string `json:"name"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
	Size     string `json:"size"`
}

// GET /api/companies
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	companies, err := s.Store.ListCompanies(user.ID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

// POST /api/companies
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().Required("name", req.Name).MaxLength("name", req.Name, 200)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	company := &models.Company{
		UserID:   user.ID,
		Name:     req.Name,
		Website:  req.Website,
		Industry: req.Industry,
		Size:     req.Size,
	}
	if err := s.Store.CreateCompany(company); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create company")
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

// GET /api/companies/{companyID}
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	company, err := s.Store.GetCompany(user.ID, urlID(r, "companyID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load company")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// PUT /api/companies/{companyID}
func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	company, err := s.Store.GetCompany(user.ID, urlID(r, "companyID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load company")
		return
	}

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().Required("name", req.Name)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	company.Name = req.Name
	company.Website = req.Website
	company.Industry = req.Industry
	company.Size = req.Size

	if err := s.Store.UpdateCompany(company); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to update company")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// DELETE /api/companies/{companyID}
func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeleteCompany(user.ID, urlID(r, "companyID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete company")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ----------------------
// Tags
// ----------------------

// GET /api/tags
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	tags, err := s.Store.ListTags(user.ID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list tags")
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// POST /api/tags
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().Required("name", req.Name).MaxLength("name", req.Name, 50)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	tag, err := s.Store.FindOrCreateTag(user.ID, req.Name)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create tag")
		return
	}
	if req.Color != "" && tag.Color != req.Color {
		tag.Color = req.Color
		if err := s.Store.DB.Save(tag).Error; err != nil {
			s.Store.LogError(err)
		}
	}
	writeJSON(w, http.StatusCreated, tag)
}

// DELETE /api/tags/{tagID}
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeleteTag(user.ID, urlID(r, "tagID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "tag not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete tag")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
