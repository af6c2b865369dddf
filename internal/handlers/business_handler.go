package handlers

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
	"github.com/BruksfildServices01/booking-engine/internal/validators"
)

type BusinessHandler struct {
	repo catalog.Repository
}

func NewBusinessHandler(repo catalog.Repository) *BusinessHandler {
	return &BusinessHandler{repo: repo}
}

// --------- Requests ---------

type CreateBusinessRequest struct {
	Name                 string `json:"name" binding:"required"`
	Slug                 string `json:"slug" binding:"required"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	Timezone             string `json:"timezone"`
	NotificationsEnabled *bool  `json:"notificationsEnabled"`
}

type UpdateBusinessRequest struct {
	Name                 *string `json:"name,omitempty"`
	Slug                 *string `json:"slug,omitempty"`
	Email                *string `json:"email,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	Address              *string `json:"address,omitempty"`
	Timezone             *string `json:"timezone,omitempty"`
	NotificationsEnabled *bool   `json:"notificationsEnabled,omitempty"`
}

type PublicBusinessResponse struct {
	Business models.Business  `json:"business"`
	Services []models.Service `json:"services"`
}

// --------- Helpers ---------

func normalizeContactEmail(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", true
	}
	return validators.NormalizeEmail(s)
}

// businessName trims s and rejects empty names and control characters;
// the name ends up in mail headers.
func businessName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", false
	}
	return s, true
}

// --------- Handlers ---------

func (h *BusinessHandler) Create(c *gin.Context) {
	var req CreateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	name, ok := businessName(req.Name)
	if !ok {
		httperr.BadRequest(c, "invalid_name", "name cannot be empty or contain control characters.")
		return
	}
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !validators.IsSlug(slug) {
		httperr.BadRequest(c, "invalid_slug", "slug must be lowercase letters, digits and single hyphens.")
		return
	}
	email, ok := normalizeContactEmail(req.Email)
	if !ok {
		httperr.BadRequest(c, "invalid_email", "email is not a valid address.")
		return
	}
	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "timezone must be an IANA identifier.")
		return
	}

	b := &models.Business{
		Name:                 name,
		Slug:                 slug,
		Email:                email,
		Phone:                strings.TrimSpace(req.Phone),
		Address:              strings.TrimSpace(req.Address),
		Timezone:             tz,
		NotificationsEnabled: true,
	}
	if req.NotificationsEnabled != nil {
		b.NotificationsEnabled = *req.NotificationsEnabled
	}

	if err := h.repo.CreateBusiness(c.Request.Context(), b); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	b, err := h.repo.GetBusiness(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	b, err := h.repo.GetBusiness(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Slug != nil && strings.ToLower(strings.TrimSpace(*req.Slug)) != b.Slug {
		httperr.Respond(c, httperr.BusinessError{
			Kind:    httperr.KindRule,
			Code:    "slug_immutable",
			Message: "slug cannot be changed once set",
		})
		return
	}
	if req.Name != nil {
		name, ok := businessName(*req.Name)
		if !ok {
			httperr.BadRequest(c, "invalid_name", "name cannot be empty or contain control characters.")
			return
		}
		b.Name = name
	}
	if req.Email != nil {
		email, ok := normalizeContactEmail(*req.Email)
		if !ok {
			httperr.BadRequest(c, "invalid_email", "email is not a valid address.")
			return
		}
		b.Email = email
	}
	if req.Phone != nil {
		b.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		b.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if !timezone.IsValid(tz) {
			httperr.BadRequest(c, "invalid_timezone", "timezone must be an IANA identifier.")
			return
		}
		b.Timezone = tz
	}
	if req.NotificationsEnabled != nil {
		b.NotificationsEnabled = *req.NotificationsEnabled
	}

	if err := h.repo.UpdateBusiness(ctx, b); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

// Public serves the data of the booking page: the business and its
// bookable services.
func (h *BusinessHandler) Public(c *gin.Context) {
	ctx := c.Request.Context()

	b, err := h.repo.GetBusinessBySlug(ctx, strings.ToLower(c.Param("slug")))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	services, err := h.repo.ListServices(ctx, b.ID, true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if services == nil {
		services = []models.Service{}
	}

	httpresp.OK(c, PublicBusinessResponse{
		Business: *b,
		Services: services,
	})
}
