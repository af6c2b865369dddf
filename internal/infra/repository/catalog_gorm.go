package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *CatalogGormRepository) CreateBusiness(ctx context.Context, b *models.Business) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if isUniqueViolation(err) {
		return httperr.ErrConflict("slug_taken")
	}
	return mapErr("create business", err, "")
}

func (r *CatalogGormRepository) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, mapErr("get business", err, "business_not_found")
	}
	return &b, nil
}

func (r *CatalogGormRepository) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error; err != nil {
		return nil, mapErr("get business by slug", err, "business_not_found")
	}
	return &b, nil
}

func (r *CatalogGormRepository) UpdateBusiness(ctx context.Context, b *models.Business) error {
	err := r.db.WithContext(ctx).Save(b).Error
	if isUniqueViolation(err) {
		return httperr.ErrConflict("slug_taken")
	}
	return mapErr("update business", err, "")
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []models.Service
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, mapErr("list services", err, "")
	}
	return out, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&s).Error; err != nil {
		return nil, mapErr("get service", err, "service_not_found")
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return mapErr("create service", r.db.WithContext(ctx).Create(s).Error, "")
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return mapErr("update service", r.db.WithContext(ctx).Save(s).Error, "")
}

// DeleteService soft deletes; existing bookings keep their price snapshot.
func (r *CatalogGormRepository) DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		Delete(&models.Service{})
	if res.Error != nil {
		return mapErr("delete service", res.Error, "")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("service_not_found")
	}
	return nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *CatalogGormRepository) ListCustomers(ctx context.Context, businessID uuid.UUID, query string) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)", like, like, like)
	}

	var out []models.Customer
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, mapErr("list customers", err, "")
	}
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *CatalogGormRepository) ListAvailability(ctx context.Context, businessID uuid.UUID) ([]models.Availability, error) {
	return listAvailability(r.db.WithContext(ctx), businessID)
}

// ReplaceAvailability swaps the whole week in one transaction.
func (r *CatalogGormRepository) ReplaceAvailability(
	ctx context.Context,
	businessID uuid.UUID,
	week []models.Availability,
) ([]models.Availability, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("business_id = ?", businessID).
			Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if len(week) == 0 {
			return nil
		}
		for i := range week {
			week[i].ID = uuid.Nil
			week[i].BusinessID = businessID
		}
		return tx.Create(&week).Error
	})
	if err != nil {
		return nil, mapErr("replace availability", err, "")
	}

	return listAvailability(r.db.WithContext(ctx), businessID)
}

// --------------------------------------------------
// Device tokens
// --------------------------------------------------

// SaveDeviceToken is idempotent per (business, token).
func (r *CatalogGormRepository) SaveDeviceToken(ctx context.Context, t *models.DeviceToken) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}, {Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
	}).Create(t).Error
	return mapErr("save device token", err, "")
}

func (r *CatalogGormRepository) ListDeviceTokens(ctx context.Context, businessID uuid.UUID) ([]models.DeviceToken, error) {
	var out []models.DeviceToken
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Find(&out).Error; err != nil {
		return nil, mapErr("list device tokens", err, "")
	}
	return out, nil
}
