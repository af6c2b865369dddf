package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	ucAvailability "github.com/BruksfildServices01/booking-engine/internal/usecase/availability"
)

type AvailabilityHandler struct {
	manage *ucAvailability.Manage
}

func NewAvailabilityHandler(manage *ucAvailability.Manage) *AvailabilityHandler {
	return &AvailabilityHandler{manage: manage}
}

type AvailabilityDay struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	week, err := h.manage.Get(c.Request.Context(), businessID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, week)
}

// Replace takes the whole week as a JSON array.
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	var req []AvailabilityDay
	if !bindJSON(c, &req) {
		return
	}

	days := make([]ucAvailability.DayInput, 0, len(req))
	for _, d := range req {
		if d.DayOfWeek == nil {
			httperr.BadRequest(c, "invalid_day_of_week", "dayOfWeek is required.")
			return
		}
		days = append(days, ucAvailability.DayInput{
			DayOfWeek: *d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsActive:  d.IsActive,
		})
	}

	week, err := h.manage.Replace(c.Request.Context(), businessID, days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, week)
}
