// Package memory is a process-local implementation of the repositories,
// used with STORAGE=memory and by use case tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type Store struct {
	mu sync.RWMutex

	businesses   map[uuid.UUID]models.Business
	services     map[uuid.UUID]models.Service
	customers    map[uuid.UUID]models.Customer
	availability map[uuid.UUID][]models.Availability
	bookings     map[uuid.UUID]models.Booking
	tokens       map[uuid.UUID][]models.DeviceToken

	now func() time.Time
}

var (
	_ booking.Repository = (*Store)(nil)
	_ catalog.Repository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		businesses:   map[uuid.UUID]models.Business{},
		services:     map[uuid.UUID]models.Service{},
		customers:    map[uuid.UUID]models.Customer{},
		availability: map[uuid.UUID][]models.Availability{},
		bookings:     map[uuid.UUID]models.Booking{},
		tokens:       map[uuid.UUID][]models.DeviceToken{},
		now:          time.Now,
	}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (s *Store) CreateBusiness(_ context.Context, b *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.businesses {
		if other.Slug == b.Slug {
			return httperr.ErrConflict("slug_taken")
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	s.businesses[b.ID] = *b
	return nil
}

func (s *Store) GetBusiness(_ context.Context, id uuid.UUID) (*models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.businesses[id]
	if !ok {
		return nil, httperr.ErrNotFound("business_not_found")
	}
	return &b, nil
}

func (s *Store) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.businesses {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, httperr.ErrNotFound("business_not_found")
}

func (s *Store) UpdateBusiness(_ context.Context, b *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.businesses[b.ID]; !ok {
		return httperr.ErrNotFound("business_not_found")
	}
	for id, other := range s.businesses {
		if id != b.ID && other.Slug == b.Slug {
			return httperr.ErrConflict("slug_taken")
		}
	}
	b.UpdatedAt = s.now()
	s.businesses[b.ID] = *b
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (s *Store) ListServices(_ context.Context, businessID uuid.UUID, activeOnly bool) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Service{}
	for _, svc := range s.services {
		if svc.BusinessID != businessID || svc.DeletedAt.Valid {
			continue
		}
		if activeOnly && !svc.IsActive {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetService(_ context.Context, businessID, serviceID uuid.UUID) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.BusinessID != businessID || svc.DeletedAt.Valid {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return &svc, nil
}

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	svc.CreatedAt = s.now()
	svc.UpdatedAt = svc.CreatedAt
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; !ok {
		return httperr.ErrNotFound("service_not_found")
	}
	svc.UpdatedAt = s.now()
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) DeleteService(_ context.Context, businessID, serviceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.BusinessID != businessID || svc.DeletedAt.Valid {
		return httperr.ErrNotFound("service_not_found")
	}
	svc.DeletedAt.Time = s.now()
	svc.DeletedAt.Valid = true
	s.services[serviceID] = svc
	return nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (s *Store) ListCustomers(_ context.Context, businessID uuid.UUID, query string) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Customer{}
	for _, c := range s.customers {
		if c.BusinessID != businessID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(c.Email, q) &&
			!strings.Contains(c.Phone, q) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetCustomer(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, httperr.ErrNotFound("customer_not_found")
	}
	return &c, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (s *Store) ListAvailability(_ context.Context, businessID uuid.UUID) ([]models.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	week := s.availability[businessID]
	out := make([]models.Availability, len(week))
	copy(out, week)
	return out, nil
}

func (s *Store) ReplaceAvailability(_ context.Context, businessID uuid.UUID, week []models.Availability) ([]models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := make([]models.Availability, len(week))
	for i, a := range week {
		a.ID = uuid.New()
		a.BusinessID = businessID
		a.CreatedAt = now
		a.UpdatedAt = now
		stored[i] = a
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].DayOfWeek < stored[j].DayOfWeek })
	s.availability[businessID] = stored

	out := make([]models.Availability, len(stored))
	copy(out, stored)
	return out, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// slotTakenLocked mirrors the partial unique index on
// (business_id, date, start_minute) for non-cancelled bookings.
func (s *Store) slotTakenLocked(b *models.Booking) bool {
	if !booking.Status(b.Status).BlocksSlot() {
		return false
	}
	for id, other := range s.bookings {
		if id == b.ID || other.BusinessID != b.BusinessID {
			continue
		}
		if other.Date == b.Date && other.StartMinute == b.StartMinute &&
			booking.Status(other.Status).BlocksSlot() {
			return true
		}
	}
	return false
}

func (s *Store) CreateBooking(_ context.Context, in booking.NewCustomer, b *models.Booking) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slotTakenLocked(b) {
		return nil, httperr.ErrConflict("slot_taken")
	}

	now := s.now()
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var customer models.Customer
	found := false
	for _, c := range s.customers {
		if c.BusinessID == b.BusinessID && c.Email == email {
			customer, found = c, true
			break
		}
	}
	if !found {
		customer = models.Customer{
			ID:         uuid.New(),
			BusinessID: b.BusinessID,
			Name:       in.Name,
			Email:      email,
			Phone:      in.Phone,
			CreatedAt:  now,
		}
	}
	customer.TotalBookings++
	customer.UpdatedAt = now
	s.customers[customer.ID] = customer

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CustomerID = customer.ID
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings[b.ID] = s.detach(*b)

	return &customer, nil
}

func (s *Store) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	b = s.attach(b)
	return &b, nil
}

func (s *Store) UpdateBooking(_ context.Context, b *models.Booking, fromStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[b.ID]
	if !ok {
		return httperr.ErrNotFound("booking_not_found")
	}
	if stored.Status != fromStatus {
		return httperr.BusinessError{
			Kind:    httperr.KindConflict,
			Code:    "booking_modified",
			Message: "the booking was changed by another request, reload and retry",
		}
	}
	if s.slotTakenLocked(b) {
		return httperr.ErrConflict("slot_taken")
	}
	b.UpdatedAt = s.now()
	s.bookings[b.ID] = s.detach(*b)
	return nil
}

func (s *Store) ListBookingsForDate(_ context.Context, businessID uuid.UUID, date string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.BusinessID == businessID && b.Date == date {
			out = append(out, s.attach(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMinute < out[j].StartMinute })
	return out, nil
}

func (s *Store) ListBookings(_ context.Context, businessID uuid.UUID) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.BusinessID == businessID {
			out = append(out, s.attach(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// detach drops association pointers so stored rows never alias caller memory.
func (s *Store) detach(b models.Booking) models.Booking {
	b.Business = nil
	b.Customer = nil
	b.Service = nil
	return b
}

// attach fills Customer and Service the way the gorm preloads do.
// Soft-deleted services are still attached.
func (s *Store) attach(b models.Booking) models.Booking {
	if c, ok := s.customers[b.CustomerID]; ok {
		b.Customer = &c
	}
	if svc, ok := s.services[b.ServiceID]; ok {
		b.Service = &svc
	}
	return b
}

// --------------------------------------------------
// Device tokens
// --------------------------------------------------

func (s *Store) SaveDeviceToken(_ context.Context, t *models.DeviceToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	list := s.tokens[t.BusinessID]
	for i, existing := range list {
		if existing.Token == t.Token {
			existing.Platform = t.Platform
			existing.UpdatedAt = now
			list[i] = existing
			*t = existing
			return nil
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tokens[t.BusinessID] = append(list, *t)
	return nil
}

func (s *Store) ListDeviceTokens(_ context.Context, businessID uuid.UUID) ([]models.DeviceToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DeviceToken, len(s.tokens[businessID]))
	copy(out, s.tokens[businessID])
	return out, nil
}
