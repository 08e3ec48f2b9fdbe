// Package contactrepo persists contact requests between users.
package contactrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/contact"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errAlreadyResolved = errors.New("request was resolved concurrently")

// ContactRequestDTO is the database row of a contact request.
type ContactRequestDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FromUserID uuid.UUID `gorm:"type:uuid;index;not null"`
	ToUserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Message    string    `gorm:"type:text;not null"`
	Status     string    `gorm:"size:16;not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false"`
	ResolvedAt *time.Time
}

// TableName returns the table name for contact requests.
func (ContactRequestDTO) TableName() string {
	return "contact_requests"
}

// GormContactRequestRepository stores contact requests with GORM.
type GormContactRequestRepository struct {
	db *gorm.DB
}

// NewGormContactRequestRepository creates a new GORM contact request repository.
func NewGormContactRequestRepository(db *gorm.DB) *GormContactRequestRepository {
	return &GormContactRequestRepository{db: db}
}

// Add saves a new contact request to the database.
func (r *GormContactRequestRepository) Add(ctx context.Context, req *contact.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := ContactRequestDTO{
		ID:         req.ID().Bytes(),
		FromUserID: req.FromUserID().Bytes(),
		ToUserID:   req.ToUserID().Bytes(),
		Message:    req.Message(),
		Status:     req.Status().String(),
		CreatedAt:  req.CreatedAt().UTC(),
		ResolvedAt: utc(req.ResolvedAt()),
	}
	return dberr.Translate("add contact request", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a contact request by ID.
func (r *GormContactRequestRepository) Get(ctx context.Context, id kernel.UUID) (*contact.Request, error) {
	var dto ContactRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("contact request", id.String())
		}
		return nil, dberr.Translate("get contact request", err)
	}

	status, err := contact.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	fromID, err := kernel.UUIDFromBytes(dto.FromUserID[:])
	if err != nil {
		return nil, err
	}
	toID, err := kernel.UUIDFromBytes(dto.ToUserID[:])
	if err != nil {
		return nil, err
	}

	return contact.RestoreRequest(requestID, fromID, toID, dto.Message, status, dto.CreatedAt.UTC(), utc(dto.ResolvedAt))
}

// Update writes the resolution only while the stored request is pending.
func (r *GormContactRequestRepository) Update(ctx context.Context, req *contact.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ContactRequestDTO{}).
		Where("id = ? AND status = ?", req.ID().Bytes(), contact.StatusPending.String()).
		UpdateColumns(map[string]any{
			"status":      req.Status().String(),
			"resolved_at": utc(req.ResolvedAt()),
		})
	if result.Error != nil {
		return dberr.Translate("update contact request", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewInvalidTransitionErrorWithCause(
			"contact request", contact.StatusPending.String(), req.Status().String(), errAlreadyResolved,
		)
	}
	return nil
}

// DeleteByUser removes requests the user raised or was asked to resolve.
func (r *GormContactRequestRepository) DeleteByUser(ctx context.Context, userID kernel.UUID) error {
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? OR to_user_id = ?", userID.Bytes(), userID.Bytes()).
		Delete(&ContactRequestDTO{}).Error
	return dberr.Translate("delete contact requests", err)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
