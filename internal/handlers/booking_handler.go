package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/dto"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/booking-engine/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create *ucBooking.CreateBooking
	update *ucBooking.UpdateBooking
	slots  *ucBooking.GetAvailableSlots
	list   *ucBooking.ListBookings
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	update *ucBooking.UpdateBooking,
	slots *ucBooking.GetAvailableSlots,
	list *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		create: create,
		update: update,
		slots:  slots,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required"`
	CustomerPhone string `json:"customerPhone"`
	ServiceID     string `json:"serviceId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
}

type UpdateBookingRequest struct {
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
	TotalPrice *int64  `json:"totalPrice"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
}

// ======================================================
// SLOTS
// ======================================================

func (h *BookingHandler) Slots(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	out, err := h.slots.Execute(c.Request.Context(), ucBooking.GetSlotsInput{
		BusinessID: businessID,
		Date:       c.Param("date"),
		ServiceID:  c.Query("serviceId"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BusinessID:    businessID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		Status:        req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.FromBooking(*b))
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	bookings, err := h.list.Execute(c.Request.Context(), businessID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromBookings(bookings))
}

func (h *BookingHandler) Get(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	b, err := h.list.Get(c.Request.Context(), uuid.Nil, bookingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromBooking(*b))
}

// ======================================================
// UPDATE (PATCH)
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.update.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		BookingID:  bookingID,
		Status:     req.Status,
		Notes:      req.Notes,
		TotalPrice: req.TotalPrice,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromBooking(*b))
}
