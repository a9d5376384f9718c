package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
	"github.com/amistack/amistack/internal/validation"
)

type pageRequest struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	IsPublished     *bool  `json:"is_published"`
}

// GET /api/pages
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	pages, err := s.Store.ListPages(user.ID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list pages")
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

// POST /api/pages
func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().
		Required("title", req.Title).
		Required("slug", req.Slug).
		Slug("slug", req.Slug).
		NoScriptTags("content", req.Content)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	page := &models.LandingPage{
		UserID:          user.ID,
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}

	if err := s.Store.CreatePage(page); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create page")
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

// GET /api/pages/{pageID}
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	page, err := s.Store.GetPage(user.ID, urlID(r, "pageID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "page not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load page")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// PUT /api/pages/{pageID}
func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	page, err := s.Store.GetPage(user.ID, urlID(r, "pageID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "page not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load page")
		return
	}

	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().
		Required("title", req.Title).
		NoScriptTags("content", req.Content)
	if req.Slug != "" {
		v.Slug("slug", req.Slug)
	}
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}

	page.Title = req.Title
	if req.Slug != "" {
		page.Slug = req.Slug
	}
	page.Content = req.Content
	page.MetaTitle = req.MetaTitle
	page.MetaDescription = req.MetaDescription
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}

	if err := s.Store.UpdatePage(page); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to update page")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// DELETE /api/pages/{pageID}
func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeletePage(user.ID, urlID(r, "pageID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "page not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete page")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/public/pages/{slug}
// Serves published pages to visitors and counts the view.
func (s *Server) handleGetPublicPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.Store.GetPublishedPage(chi.URLParam(r, "slug"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "page not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load page")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title":            page.Title,
		"content":          page.Content,
		"meta_title":       page.MetaTitle,
		"meta_description": page.MetaDescription,
	})
}
