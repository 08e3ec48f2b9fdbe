// Package servicerepo persists categories and the services freelancers offer.
package servicerepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryDTO is the database row of a service category.
type CategoryDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:128;uniqueIndex;not null"`
}

// TableName returns the table name for categories.
func (CategoryDTO) TableName() string {
	return "categories"
}

// ServiceDTO is the database row of a service offering.
type ServiceDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FreelancerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CategoryID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Title         string    `gorm:"size:255;not null"`
	PriceAmount   int64     `gorm:"not null"`
	PriceCurrency string    `gorm:"size:3;not null"`
	DeliveryDays  int       `gorm:"not null"`
}

// TableName returns the table name for services.
func (ServiceDTO) TableName() string {
	return "services"
}

// GormServiceRepository stores services and their categories with GORM.
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GORM service repository.
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// AddCategory inserts the category unless one with the same name exists.
func (r *GormServiceRepository) AddCategory(ctx context.Context, c catalog.Category) error {
	dto := CategoryDTO{ID: c.ID.Bytes(), Name: c.Name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&dto).Error
	return dberr.Translate("add category", err)
}

// Add saves a new service to the database.
func (r *GormServiceRepository) Add(ctx context.Context, s *catalog.Service) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := ServiceDTO{
		ID:            s.ID().Bytes(),
		FreelancerID:  s.FreelancerID().Bytes(),
		CategoryID:    s.CategoryID().Bytes(),
		Title:         s.Title(),
		PriceAmount:   s.Price().Amount(),
		PriceCurrency: s.Price().Currency(),
		DeliveryDays:  s.DeliveryDays(),
	}
	return dberr.Translate("add service", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a service by ID.
func (r *GormServiceRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error) {
	var dto ServiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service", id.String())
		}
		return nil, dberr.Translate("get service", err)
	}

	price, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	freelancerID, err := kernel.UUIDFromBytes(dto.FreelancerID[:])
	if err != nil {
		return nil, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	return catalog.NewService(serviceID, freelancerID, categoryID, dto.Title, price, dto.DeliveryDays)
}

// DeleteByFreelancer removes every service the freelancer offers.
func (r *GormServiceRepository) DeleteByFreelancer(ctx context.Context, freelancerID kernel.UUID) error {
	err := r.db.WithContext(ctx).Where("freelancer_id = ?", freelancerID.Bytes()).Delete(&ServiceDTO{}).Error
	return dberr.Translate("delete services", err)
}
