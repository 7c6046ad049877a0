package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twofourteen/hr-portal/internal/auth"
)

// Repository implements auth.RepositoryAPI using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*auth.Account, error) {
	var account auth.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) GetByID(id string) (*auth.Account, error) {
	var account auth.Account
	err := r.db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidSession
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) Create(account *auth.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	return r.db.Create(account).Error
}

func (r *Repository) StampLastLogin(id string, at time.Time) error {
	return r.db.Model(&auth.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login": at,
			"updated_at": time.Now(),
		}).Error
}
