package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatbot-backend/internal/common"
	"chatbot-backend/internal/models"
)

var ErrDuplicateEmail = errors.New("email already registered")

// CredentialStore persists user identities. Users are created at registration
// and never mutated or deleted.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

func (s *CredentialStore) Register(ctx context.Context, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("auth: check email: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, fmt.Errorf("auth: new user id: %w", err)
	}

	user := &models.User{ID: id, Email: email, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// unique index backs up the pre-check under concurrent registration
		return nil, ErrDuplicateEmail
	}
	return user, nil
}

// Verify returns the user on an email+password match and (nil, nil) on a
// wrong password or unknown email. Bad credentials are a normal outcome,
// not an error.
func (s *CredentialStore) Verify(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth: lookup user: %w", err)
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return &user, nil
}
