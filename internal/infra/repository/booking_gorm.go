package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ booking.Repository = (*BookingGormRepository)(nil)

// --------------------------------------------------
// Business / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetBusiness(
	ctx context.Context,
	id uuid.UUID,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, mapErr("get business", err, "business_not_found")
	}
	return &b, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	businessID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&s).Error; err != nil {
		return nil, mapErr("get service", err, "service_not_found")
	}
	return &s, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListAvailability(
	ctx context.Context,
	businessID uuid.UUID,
) ([]models.Availability, error) {
	return listAvailability(r.db.WithContext(ctx), businessID)
}

func listAvailability(db *gorm.DB, businessID uuid.UUID) ([]models.Availability, error) {
	var week []models.Availability
	if err := db.
		Where("business_id = ?", businessID).
		Order("day_of_week ASC").
		Find(&week).Error; err != nil {
		return nil, mapErr("list availability", err, "")
	}
	return week, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	in booking.NewCustomer,
	b *models.Booking,
) (*models.Customer, error) {

	var customer models.Customer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		email := strings.ToLower(strings.TrimSpace(in.Email))

		candidate := models.Customer{
			BusinessID: b.BusinessID,
			Name:       in.Name,
			Email:      email,
			Phone:      in.Phone,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}, {Name: "email"}},
			DoNothing: true,
		}).Create(&candidate).Error; err != nil {
			return err
		}

		if err := tx.
			Where("business_id = ? AND email = ?", b.BusinessID, email).
			First(&customer).Error; err != nil {
			return err
		}

		b.CustomerID = customer.ID
		if err := tx.Create(b).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrConflict("slot_taken")
			}
			return err
		}

		if err := tx.Model(&models.Customer{}).
			Where("id = ?", customer.ID).
			UpdateColumn("total_bookings", gorm.Expr("total_bookings + 1")).Error; err != nil {
			return err
		}
		customer.TotalBookings++

		return nil
	})
	if err != nil {
		return nil, mapErr("create booking", err, "")
	}

	return &customer, nil
}

// --------------------------------------------------
// Booking (read / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&b, "id = ?", id).Error; err != nil {
		return nil, mapErr("get booking", err, "booking_not_found")
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
	fromStatus string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, fromStatus).
		Updates(map[string]any{
			"date":         b.Date,
			"start_minute": b.StartMinute,
			"status":       b.Status,
			"total_price":  b.TotalPrice,
			"notes":        b.Notes,
		})
	if isUniqueViolation(res.Error) {
		return httperr.ErrConflict("slot_taken")
	}
	if res.Error != nil {
		return mapErr("update booking", res.Error, "")
	}
	if res.RowsAffected == 0 {
		return errBookingModified
	}
	return nil
}

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	businessID uuid.UUID,
	date string,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("business_id = ? AND date = ?", businessID, date).
		Order("start_minute ASC").
		Find(&out).Error; err != nil {
		return nil, mapErr("list bookings for date", err, "")
	}
	return out, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	businessID uuid.UUID,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, mapErr("list bookings", err, "")
	}
	return out, nil
}

func (r *BookingGormRepository) GetCustomer(
	ctx context.Context,
	id uuid.UUID,
) (*models.Customer, error) {

	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, mapErr("get customer", err, "customer_not_found")
	}
	return &c, nil
}
