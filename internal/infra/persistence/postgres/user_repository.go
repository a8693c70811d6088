// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"maps"
	"time"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "find user by id", "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by email", "lower(email) = lower(?)", email)
}

// FindByUsername retrieves a single user by login name.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by username", "lower(username) = lower(?)", username)
}

// FindByPhone retrieves a single user by phone number.
func (repo *userRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by phone", "phone = ?", phone)
}

// SetAttribute merges one extension attribute inside a row lock.
func (repo *userRepository) SetAttribute(ctx context.Context, id uuid.UUID, key, value string) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userM model.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ? AND deleted_at IS NULL", id).First(&userM).Error; err != nil {
			return err
		}

		extension := maps.Clone(userM.Extension)
		if extension == nil {
			extension = make(map[string]string)
		}
		extension[key] = value

		return tx.Model(&userM).Updates(map[string]any{
			"extension":  extension,
			"updated_at": time.Now(),
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrUserNotFound
	}
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "set user attribute")
	}

	return nil
}

func (repo *userRepository) findOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where(query, args...).
		Where("deleted_at IS NULL").
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, op)
	}

	return toUserDomain(&userM), nil
}

func toUserDomain(userM *model.UserModel) *entity.User {
	return &entity.User{
		ID:           userM.ID,
		Username:     deref(userM.Username),
		Email:        userM.Email,
		Phone:        deref(userM.Phone),
		PasswordHash: userM.PasswordHash,
		Roles:        entity.RolesFromStrings(userM.Roles),
		Groups:       userM.Groups,
		Extension:    userM.Extension,
		CreatedAt:    userM.CreatedAt,
		UpdatedAt:    userM.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
