package auth

import (
	"time"

	"gorm.io/gorm"

	entity "mixtape.GO/model/entity"
)

type AuthRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db, now: time.Now}
}

// FindActiveToken returns a non-revoked, unexpired admin token.
func (r *AuthRepository) FindActiveToken(token string) (*entity.AdminToken, error) {
	var t entity.AdminToken
	if err := r.db.Where("token = ? AND revoked = ?", token, false).First(&t).Error; err != nil {
		return nil, err
	}
	if !t.Active(r.now()) {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

// CreateToken stores a new token. Used by the CLI and tests.
func (r *AuthRepository) CreateToken(t *entity.AdminToken) error {
	return r.db.Create(t).Error
}

// Revoke marks a token unusable.
func (r *AuthRepository) Revoke(token string) error {
	return r.db.Model(&entity.AdminToken{}).Where("token = ?", token).Update("revoked", true).Error
}
