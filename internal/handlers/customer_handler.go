package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type CustomerHandler struct {
	repo catalog.Repository
}

func NewCustomerHandler(repo catalog.Repository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

func (h *CustomerHandler) List(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.repo.GetBusiness(ctx, businessID); err != nil {
		httperr.Respond(c, err)
		return
	}

	customers, err := h.repo.ListCustomers(ctx, businessID, c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List[models.Customer](c, customers)
}

// --------- Device tokens ---------

type DeviceTokenHandler struct {
	repo catalog.Repository
}

func NewDeviceTokenHandler(repo catalog.Repository) *DeviceTokenHandler {
	return &DeviceTokenHandler{repo: repo}
}

type RegisterDeviceTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

func (h *DeviceTokenHandler) Register(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	var req RegisterDeviceTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.GetBusiness(ctx, businessID); err != nil {
		httperr.Respond(c, err)
		return
	}

	t := &models.DeviceToken{
		BusinessID: businessID,
		Token:      req.Token,
		Platform:   req.Platform,
	}
	if err := h.repo.SaveDeviceToken(ctx, t); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, t)
}
