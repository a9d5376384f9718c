package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amistack/amistack/internal/models"
)

// ----------------------
// Subscriptions
// ----------------------

func (s *Store) GetSubscription(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.DB.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) GetSubscriptionByCustomer(customerID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.DB.Where("stripe_customer_id = ?", customerID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpsertSubscription creates or updates the row keyed by customer ID.
func (s *Store) UpsertSubscription(sub *models.Subscription) error {
	existing, err := s.GetSubscriptionByCustomer(sub.StripeCustomerID)
	if err == nil {
		sub.ID = existing.ID
		if sub.UserID == 0 {
			sub.UserID = existing.UserID
		}
		return s.DB.Save(sub).Error
	}
	if err != ErrNotFound {
		return err
	}
	return s.DB.Create(sub).Error
}
