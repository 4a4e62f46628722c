package entity

import "time"

// AdminToken is a bearer token accepted by the admin catalog API.
type AdminToken struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;type:varchar(64);not null"`
	Token     string     `gorm:"column:token;type:varchar(64);not null;uniqueIndex"`
	Revoked   bool       `gorm:"column:revoked;not null;default:false"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (AdminToken) TableName() string {
	return "admin_token"
}

// Active reports whether the token is usable at now.
func (t *AdminToken) Active(now time.Time) bool {
	if t.Revoked {
		return false
	}
	return t.ExpiresAt == nil || now.Before(*t.ExpiresAt)
}
