// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     *string           `gorm:"type:varchar(100);uniqueIndex"`
	Email        string            `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone        *string           `gorm:"type:varchar(32);uniqueIndex"`
	PasswordHash string            `gorm:"type:varchar(255)"`
	Roles        []string          `gorm:"type:jsonb;serializer:json"`
	Groups       []string          `gorm:"type:jsonb;serializer:json"`
	Extension    map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
