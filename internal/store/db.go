package store

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amistack/amistack/internal/models"
)

type Store struct {
	DB *gorm.DB
}

// NewStore opens the database and runs migrations. Driver is "sqlite"
// (default) or "postgres"; dsn is the file path or connection string.
func NewStore(driver, dsn string) (*Store, error) {
	var dial gorm.Dialector
	switch driver {
	case "postgres":
		dial = postgres.Open(dsn)
	default:
		dial = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate all models (add new ones here when needed)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.Company{},
		&models.Interaction{},
		&models.Tag{},
		&models.Form{},
		&models.FormSubmission{},
		&models.LandingPage{},
		&models.Chatbot{},
		&models.Conversation{},
		&models.ChatMessage{},
		&models.Workflow{},
		&models.Subscription{},
	); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) LogError(err error) {
	if err != nil {
		log.Println("[STORE ERROR]", err)
	}
}

var ErrNotFound = gorm.ErrRecordNotFound

// ----------------------
// Users (tenants)
// ----------------------

func (s *Store) CreateUser(u *models.User) error {
	return s.DB.Create(u).Error
}

func (s *Store) UpdateUser(u *models.User) error {
	return s.DB.Save(u).Error
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.DB.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByToken(token string) (*models.User, error) {
	var u models.User
	err := s.DB.Where("api_token = ?", token).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UserCount() (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}
