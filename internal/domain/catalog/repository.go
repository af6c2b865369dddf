package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// Repository covers the plain single-table CRUD around the booking core.
type Repository interface {
	// -------- Business --------
	CreateBusiness(ctx context.Context, b *models.Business) error
	GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error)
	GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error)
	UpdateBusiness(ctx context.Context, b *models.Business) error

	// -------- Service --------
	ListServices(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]models.Service, error)
	GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error

	// -------- Customer --------
	ListCustomers(ctx context.Context, businessID uuid.UUID, query string) ([]models.Customer, error)

	// -------- Availability --------
	ListAvailability(ctx context.Context, businessID uuid.UUID) ([]models.Availability, error)
	ReplaceAvailability(ctx context.Context, businessID uuid.UUID, week []models.Availability) ([]models.Availability, error)

	// -------- Device tokens --------
	SaveDeviceToken(ctx context.Context, t *models.DeviceToken) error
	ListDeviceTokens(ctx context.Context, businessID uuid.UUID) ([]models.DeviceToken, error)
}
