package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amistack/amistack/internal/models"
)

// ----------------------
// Contacts
// ----------------------

func (s *Store) ListContacts(userID uint) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.DB.Where("user_id = ?", userID).
		Preload("Tags").Preload("Company").
		Order("created_at desc").Find(&contacts).Error
	return contacts, err
}

func (s *Store) GetContact(userID, id uint) (*models.Contact, error) {
	var c models.Contact
	err := s.DB.Where("user_id = ?", userID).
		Preload("Tags").Preload("Company").Preload("Interactions").
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateContact(c *models.Contact) error {
	return s.DB.Create(c).Error
}

// CreateContactWithTags creates the contact and attaches its tag set
// in a single transaction, mirroring UpdateContactWithTags.
func (s *Store) CreateContactWithTags(c *models.Contact, tags []models.Tag) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Model(c).Association("Tags").Replace(tags)
	})
}

// UpdateContactWithTags saves the contact and replaces its tag set in a
// single transaction, so a crash cannot leave the contact with stale tags.
func (s *Store) UpdateContactWithTags(c *models.Contact, tags []models.Tag) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		return tx.Model(c).Association("Tags").Replace(tags)
	})
}

func (s *Store) UpdateContact(c *models.Contact) error {
	return s.DB.Save(c).Error
}

// DeleteContact removes the contact and cascades to its interactions
// and tag links in one transaction.
func (s *Store) DeleteContact(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&models.Contact{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("contact_id = ?", id).Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM contact_tags WHERE contact_id = ?", id).Error
	})
}

// FindContactByEmail looks up a tenant's contact by email, used by the
// form-submission auto-create path to avoid duplicates.
func (s *Store) FindContactByEmail(userID uint, email string) (*models.Contact, error) {
	var c models.Contact
	err := s.DB.Where("user_id = ? AND email = ?", userID, email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ----------------------
// Companies
// ----------------------

func (s *Store) ListCompanies(userID uint) ([]models.Company, error) {
	var companies []models.Company
	err := s.DB.Where("user_id = ?", userID).Order("name").Find(&companies).Error
	return companies, err
}

func (s *Store) GetCompany(userID, id uint) (*models.Company, error) {
	var c models.Company
	err := s.DB.Where("user_id = ?", userID).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCompany(c *models.Company) error {
	return s.DB.Create(c).Error
}

func (s *Store) UpdateCompany(c *models.Company) error {
	return s.DB.Save(c).Error
}

func (s *Store) DeleteCompany(userID, id uint) error {
	res := s.DB.Where("user_id = ?", userID).Delete(&models.Company{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ----------------------
// Interactions
// ----------------------

func (s *Store) ListInteractions(userID, contactID uint) ([]models.Interaction, error) {
	var items []models.Interaction
	err := s.DB.Where("user_id = ? AND contact_id = ?", userID, contactID).
		Order("created_at desc").Find(&items).Error
	return items, err
}

func (s *Store) GetInteraction(userID, id uint) (*models.Interaction, error) {
	var it models.Interaction
	err := s.DB.Where("user_id = ?", userID).First(&it, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *Store) CreateInteraction(it *models.Interaction) error {
	return s.DB.Create(it).Error
}

func (s *Store) UpdateInteraction(it *models.Interaction) error {
	return s.DB.Save(it).Error
}

func (s *Store) DeleteInteraction(userID, id uint) error {
	res := s.DB.Where("user_id = ?", userID).Delete(&models.Interaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ----------------------
// Tags
// ----------------------

func (s *Store) ListTags(userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.DB.Where("user_id = ?", userID).Order("name").Find(&tags).Error
	return tags, err
}

func (s *Store) CreateTag(t *models.Tag) error {
	return s.DB.Create(t).Error
}

func (s *Store) DeleteTag(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Exec("DELETE FROM contact_tags WHERE tag_id = ?", id).Error
	})
}

// FindOrCreateTag returns the tenant's tag with the given name,
// creating it when absent.
func (s *Store) FindOrCreateTag(userID uint, name string) (*models.Tag, error) {
	var t models.Tag
	err := s.DB.Where("user_id = ? AND name = ?", userID, name).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	t = models.Tag{UserID: userID, Name: name}
	if err := s.DB.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
