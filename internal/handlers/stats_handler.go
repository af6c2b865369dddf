package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	ucStats "github.com/BruksfildServices01/booking-engine/internal/usecase/stats"
)

type StatsHandler struct {
	dashboard *ucStats.GetDashboard
}

func NewStatsHandler(dashboard *ucStats.GetDashboard) *StatsHandler {
	return &StatsHandler{dashboard: dashboard}
}

func (h *StatsHandler) Get(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	d, err := h.dashboard.Execute(c.Request.Context(), businessID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, d)
}
