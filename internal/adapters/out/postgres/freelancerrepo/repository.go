// Package freelancerrepo persists applications to become a freelancer.
package freelancerrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/freelancer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FreelancerRequestDTO is the database row of a freelancer request.
type FreelancerRequestDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Motivation string    `gorm:"type:text"`
	Status     string    `gorm:"size:16;not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false"`
	ResolvedAt *time.Time
}

// TableName returns the table name for freelancer requests.
func (FreelancerRequestDTO) TableName() string {
	return "freelancer_requests"
}

// GormFreelancerRequestRepository stores freelancer requests with GORM.
type GormFreelancerRequestRepository struct {
	db *gorm.DB
}

// NewGormFreelancerRequestRepository creates a new GORM freelancer request repository.
func NewGormFreelancerRequestRepository(db *gorm.DB) *GormFreelancerRequestRepository {
	return &GormFreelancerRequestRepository{db: db}
}

// Add saves a new freelancer request to the database.
func (r *GormFreelancerRequestRepository) Add(ctx context.Context, req *freelancer.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := FreelancerRequestDTO{
		ID:         req.ID().Bytes(),
		UserID:     req.UserID().Bytes(),
		Motivation: req.Motivation(),
		Status:     req.Status().String(),
		CreatedAt:  req.CreatedAt().UTC(),
		ResolvedAt: req.ResolvedAt(),
	}
	return dberr.Translate("add freelancer request", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a freelancer request by ID.
func (r *GormFreelancerRequestRepository) Get(ctx context.Context, id kernel.UUID) (*freelancer.Request, error) {
	var dto FreelancerRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("freelancer request", id.String())
		}
		return nil, dberr.Translate("get freelancer request", err)
	}

	status, err := freelancer.ParseRequestStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return freelancer.RestoreRequest(requestID, userID, dto.Motivation, status, dto.CreatedAt.UTC(), dto.ResolvedAt)
}

// Update writes the resolution only while the stored request is pending.
func (r *GormFreelancerRequestRepository) Update(ctx context.Context, req *freelancer.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&FreelancerRequestDTO{}).
		Where("id = ? AND status = ?", req.ID().Bytes(), freelancer.RequestPending.String()).
		UpdateColumns(map[string]any{
			"status":      req.Status().String(),
			"resolved_at": req.ResolvedAt(),
		})
	if result.Error != nil {
		return dberr.Translate("update freelancer request", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewInvalidTransitionError(
			"freelancer request", freelancer.RequestPending.String(), req.Status().String(),
		)
	}
	return nil
}

// DeleteByUser removes the requests a user submitted or resolved.
func (r *GormFreelancerRequestRepository) DeleteByUser(ctx context.Context, userID kernel.UUID) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", userID.Bytes()).Delete(&FreelancerRequestDTO{}).Error
	return dberr.Translate("delete freelancer requests", err)
}
