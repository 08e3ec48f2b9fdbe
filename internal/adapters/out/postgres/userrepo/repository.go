// Package userrepo persists users with GORM.
package userrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO is the database row of a user.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:320;uniqueIndex;not null"`
	Role      string    `gorm:"size:16;not null"`
	IsActive  bool      `gorm:"not null"`
	IsAdmin   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the table name for users.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserRepository stores users with GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new user to the database.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := UserDTO{
		ID:        u.ID().Bytes(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      string(u.Role()),
		IsActive:  u.IsActive(),
		IsAdmin:   u.IsAdmin(),
		CreatedAt: u.CreatedAt().UTC(),
	}
	return dberr.Translate("add user", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, dberr.Translate("get user", err)
	}

	userID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return user.NewUser(userID, dto.Name, dto.Email, user.Role(dto.Role), dto.IsActive, dto.IsAdmin, dto.CreatedAt.UTC())
}

// Delete removes the user row only. Dependent rows are removed by the
// caller in the same transaction.
func (r *GormUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return dberr.Translate("delete user", r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&UserDTO{}).Error)
}
