package store

import (
	"time"

	"github.com/amistack/amistack/internal/models"
)

// StatusCount is a generic label/count pair produced by group-by queries.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// ----------------------
// Contact counts
// ----------------------

func (s *Store) CountContacts(userID uint) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Contact{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (s *Store) CountContactsSince(userID uint, since time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Contact{}).
		Where("user_id = ? AND created_at >= ?", userID, since).Count(&n).Error
	return n, err
}

func (s *Store) CountContactsByStatus(userID uint, status string) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Contact{}).
		Where("user_id = ? AND status = ?", userID, status).Count(&n).Error
	return n, err
}

// CountQualifiedSince counts window contacts at or above the
// qualification threshold.
func (s *Store) CountQualifiedSince(userID uint, since time.Time, threshold int) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Contact{}).
		Where("user_id = ? AND created_at >= ? AND lead_score >= ?", userID, since, threshold).
		Count(&n).Error
	return n, err
}

func (s *Store) CountActiveSince(userID uint, since time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Contact{}).
		Where("user_id = ? AND created_at >= ? AND status = ?", userID, since, models.StatusActive).
		Count(&n).Error
	return n, err
}

// CountClientsSince counts window contacts that are both active and at
// or above the client score threshold.
func (s *Store) CountClientsSince(userID uint, since time.Time, threshold int) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Contact{}).
		Where("user_id = ? AND created_at >= ? AND lead_score >= ? AND status = ?",
			userID, since, threshold, models.StatusActive).
		Count(&n).Error
	return n, err
}

func (s *Store) ContactStatusCounts(userID uint) ([]StatusCount, error) {
	var out []StatusCount
	err := s.DB.Model(&models.Contact{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").Scan(&out).Error
	return out, err
}

func (s *Store) AvgLeadScore(userID uint) (float64, error) {
	var row struct{ Avg *float64 }
	err := s.DB.Model(&models.Contact{}).
		Select("avg(lead_score) as avg").
		Where("user_id = ?", userID).Scan(&row).Error
	if err != nil || row.Avg == nil {
		return 0, err
	}
	return *row.Avg, nil
}

// ----------------------
// Interaction counts
// ----------------------

func (s *Store) CountInteractions(userID uint) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Interaction{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (s *Store) CountInteractionsSince(userID uint, since time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Interaction{}).
		Where("user_id = ? AND created_at >= ?", userID, since).Count(&n).Error
	return n, err
}

func (s *Store) InteractionTypeCounts(userID uint) ([]TypeCount, error) {
	var out []TypeCount
	err := s.DB.Model(&models.Interaction{}).
		Select("type, count(*) as count").
		Where("user_id = ?", userID).
		Group("type").Scan(&out).Error
	return out, err
}

// ----------------------
// Form / submission counts
// ----------------------

func (s *Store) CountForms(userID uint) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Form{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (s *Store) CountSubmissions(userID uint) (int64, error) {
	var n int64
	err := s.DB.Model(&models.FormSubmission{}).
		Joins("JOIN forms ON forms.id = form_submissions.form_id").
		Where("forms.user_id = ?", userID).Count(&n).Error
	return n, err
}

func (s *Store) CountSubmissionsSince(userID uint, since time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&models.FormSubmission{}).
		Joins("JOIN forms ON forms.id = form_submissions.form_id").
		Where("forms.user_id = ? AND form_submissions.created_at >= ?", userID, since).
		Count(&n).Error
	return n, err
}

// ----------------------
// Timeline streams
// ----------------------

func (s *Store) ContactCreationTimes(userID uint, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.DB.Model(&models.Contact{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at").Pluck("created_at", &times).Error
	return times, err
}

func (s *Store) InteractionTimes(userID uint, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.DB.Model(&models.Interaction{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at").Pluck("created_at", &times).Error
	return times, err
}

func (s *Store) SubmissionTimes(userID uint, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.DB.Model(&models.FormSubmission{}).
		Joins("JOIN forms ON forms.id = form_submissions.form_id").
		Where("forms.user_id = ? AND form_submissions.created_at >= ?", userID, since).
		Order("form_submissions.created_at").
		Pluck("form_submissions.created_at", &times).Error
	return times, err
}

// TopContactsByScore returns the tenant's highest scored contacts.
func (s *Store) TopContactsByScore(userID uint, limit int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.DB.Where("user_id = ?", userID).
		Order("lead_score desc").Limit(limit).Find(&contacts).Error
	return contacts, err
}
