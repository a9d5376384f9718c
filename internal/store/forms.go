package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amistack/amistack/internal/models"
)

// ----------------------
// Forms
// ----------------------

func (s *Store) ListForms(userID uint) ([]models.Form, error) {
	var forms []models.Form
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&forms).Error
	return forms, err
}

func (s *Store) GetForm(userID, id uint) (*models.Form, error) {
	var f models.Form
	err := s.DB.Where("user_id = ?", userID).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFormBySlug is the public lookup, not tenant scoped.
func (s *Store) GetFormBySlug(slug string) (*models.Form, error) {
	var f models.Form
	err := s.DB.Where("slug = ?", slug).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) CreateForm(f *models.Form) error {
	return s.DB.Create(f).Error
}

func (s *Store) UpdateForm(f *models.Form) error {
	return s.DB.Save(f).Error
}

func (s *Store) DeleteForm(userID, id uint) error {
	res := s.DB.Where("user_id = ?", userID).Delete(&models.Form{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.DB.Where("form_id = ?", id).Delete(&models.FormSubmission{}).Error
}

// ----------------------
// Submissions
// ----------------------

// CreateSubmission stores the submission and bumps the form counter
// in one transaction.
func (s *Store) CreateSubmission(sub *models.FormSubmission) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Model(&models.Form{}).Where("id = ?", sub.FormID).
			Update("submission_count", gorm.Expr("submission_count + 1")).Error
	})
}

func (s *Store) ListSubmissions(userID, formID uint) ([]models.FormSubmission, error) {
	// Ownership check via the form
	if _, err := s.GetForm(userID, formID); err != nil {
		return nil, err
	}
	var subs []models.FormSubmission
	err := s.DB.Where("form_id = ?", formID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

// ----------------------
// Landing pages
// ----------------------

func (s *Store) ListPages(userID uint) ([]models.LandingPage, error) {
	var pages []models.LandingPage
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&pages).Error
	return pages, err
}

func (s *Store) GetPage(userID, id uint) (*models.LandingPage, error) {
	var p models.LandingPage
	err := s.DB.Where("user_id = ?", userID).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPublishedPage is the public lookup by slug; only published pages
// are visible and each hit bumps the view counter.
func (s *Store) GetPublishedPage(slug string) (*models.LandingPage, error) {
	var p models.LandingPage
	err := s.DB.Where("slug = ? AND is_published = ?", slug, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.DB.Model(&p).Update("view_count", gorm.Expr("view_count + 1"))
	return &p, nil
}

func (s *Store) CreatePage(p *models.LandingPage) error {
	return s.DB.Create(p).Error
}

func (s *Store) UpdatePage(p *models.LandingPage) error {
	return s.DB.Save(p).Error
}

func (s *Store) DeletePage(userID, id uint) error {
	res := s.DB.Where("user_id = ?", userID).Delete(&models.LandingPage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ----------------------
// Workflows
// ----------------------

func (s *Store) ListWorkflows(userID uint) ([]models.Workflow, error) {
	var wfs []models.Workflow
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&wfs).Error
	return wfs, err
}

func (s *Store) GetWorkflow(userID, id uint) (*models.Workflow, error) {
	var wf models.Workflow
	err := s.DB.Where("user_id = ?", userID).First(&wf, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wf, nil
}

func (s *Store) CreateWorkflow(wf *models.Workflow) error {
	return s.DB.Create(wf).Error
}

func (s *Store) UpdateWorkflow(wf *models.Workflow) error {
	return s.DB.Save(wf).Error
}

func (s *Store) DeleteWorkflow(userID, id uint) error {
	res := s.DB.Where("user_id = ?", userID).Delete(&models.Workflow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
