package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type ServiceHandler struct {
	repo catalog.Repository
}

func NewServiceHandler(repo catalog.Repository) *ServiceHandler {
	return &ServiceHandler{repo: repo}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration" binding:"required,min=1"`
	Price       *int64 `json:"price" binding:"required,min=0"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// --------- Handlers ---------

// List returns every service; ?active=true keeps only bookable ones.
func (h *ServiceHandler) List(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.repo.GetBusiness(ctx, businessID); err != nil {
		httperr.Respond(c, err)
		return
	}

	activeOnly := strings.EqualFold(strings.TrimSpace(c.Query("active")), "true")
	services, err := h.repo.ListServices(ctx, businessID, activeOnly)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.GetBusiness(ctx, businessID); err != nil {
		httperr.Respond(c, err)
		return
	}

	svc := &models.Service{
		BusinessID:  businessID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		DurationMin: req.Duration,
		Price:       *req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.repo.CreateService(ctx, svc); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceId")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	svc, err := h.repo.GetService(ctx, businessID, serviceID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			httperr.BadRequest(c, "invalid_duration", "duration must be greater than zero.")
			return
		}
		svc.DurationMin = *req.Duration
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "price must be zero or more.")
			return
		}
		svc.Price = *req.Price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateService(ctx, svc); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceId")
	if !ok {
		return
	}

	if err := h.repo.DeleteService(c.Request.Context(), businessID, serviceID); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
