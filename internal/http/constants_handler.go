package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/i18n"
	"github.com/guttosm/pool-flow-service/internal/middleware"
	"github.com/guttosm/pool-flow-service/internal/repository"
	"github.com/guttosm/pool-flow-service/internal/service"
)

// maxHistoryLimit caps GET /api/constants/history.
const maxHistoryLimit = 100

// ConstantsHandler provides HTTP handlers for constants profile routes.
type ConstantsHandler struct {
	constantsService service.ConstantsService
}

// NewConstantsHandler creates a new ConstantsHandler instance.
func NewConstantsHandler(constantsService service.ConstantsService) *ConstantsHandler {
	return &ConstantsHandler{constantsService: constantsService}
}

// GetActiveConstants handles GET /api/constants requests.
//
// @Summary      Get active constants
// @Description  Returns the active constants profile, or the configured defaults when no profile is stored
// @Tags         Constants
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Active constants"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Security     BearerAuth
// @Router       /api/constants [get]
func (h *ConstantsHandler) GetActiveConstants(c *gin.Context) {
	active := h.constantsService.Active(c.Request.Context())

	resp := dto.ConstantsProfileResponse{
		GallonsPerCubicFoot: active.Constants.GallonsPerCubicFoot,
		UnitsPerLivingRatio: active.Constants.UnitsPerLivingRatio,
		GPMPerUnitFactor:    active.Constants.GPMPerUnitFactor,
		Active:              true,
		Source:              active.Source(),
	}
	if active.Profile != nil {
		resp = toProfileResponse(active.Profile)
	}

	replyTo(c).ok(resp)
}

// UpdateConstants handles PUT /api/constants requests.
//
// @Summary      Update constants
// @Description  Stores a new active constants profile. The previous profile is kept in history and the version increments.
// @Tags         Constants
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.UpdateConstantsRequest true "Constants profile"
// @Success      200 {object} dto.SuccessResponse "New active profile"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - missing constants:write scope"
// @Failure      409 {object} dto.ErrorResponse "Concurrent update"
// @Failure      503 {object} dto.ErrorResponse "Profile storage not configured"
// @Security     BearerAuth
// @Router       /api/constants [put]
func (h *ConstantsHandler) UpdateConstants(c *gin.Context) {
	r := replyTo(c)

	req, err := bindJSON[dto.UpdateConstantsRequest](c)
	if err != nil {
		r.fail(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	// An authenticated subject always wins over the body label.
	createdBy := middleware.GetSubject(c)
	if createdBy == "" {
		createdBy = req.CreatedBy
	}

	profile, err := h.constantsService.Update(c.Request.Context(), model.GlobalConstants{
		GallonsPerCubicFoot: req.GallonsPerCubicFoot,
		UnitsPerLivingRatio: req.UnitsPerLivingRatio,
		GPMPerUnitFactor:    req.GPMPerUnitFactor,
	}, createdBy)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidConstants):
			r.fail(http.StatusBadRequest, i18n.ErrKeyInvalidConstants, err)
		case errors.Is(err, repository.ErrProfileConflict):
			r.fail(http.StatusConflict, i18n.ErrKeyConstantsConflict, err)
		case errors.Is(err, service.ErrRepositoryNotConfigured):
			r.fail(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		default:
			r.fail(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	if ls, ok := loggingServiceFrom(c); ok {
		middleware.AuditLog(ls, c, model.ActionUpdateConstants, "", "Constants profile updated", map[string]interface{}{
			"version":                profile.Version,
			"gallons_per_cubic_foot": profile.GallonsPerCubicFoot,
			"units_per_living_ratio": profile.UnitsPerLivingRatio,
			"gpm_per_unit_factor":    profile.GPMPerUnitFactor,
		})
	}

	r.ok(toProfileResponse(profile))
}

// ListConstantsHistory handles GET /api/constants/history requests.
//
// @Summary      List constants history
// @Description  Returns stored constants profiles, newest first
// @Tags         Constants
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Limit number of results (max 100)"
// @Success      200 {object} dto.SuccessResponse "Constants history"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      503 {object} dto.ErrorResponse "Profile storage not configured"
// @Security     BearerAuth
// @Router       /api/constants/history [get]
func (h *ConstantsHandler) ListConstantsHistory(c *gin.Context) {
	r := replyTo(c)

	limit := maxHistoryLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxHistoryLimit {
			limit = l
		}
	}

	profiles, err := h.constantsService.History(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrRepositoryNotConfigured) {
			r.fail(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		} else {
			r.fail(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	resp := make([]dto.ConstantsProfileResponse, len(profiles))
	for i := range profiles {
		resp[i] = toProfileResponse(&profiles[i])
	}
	r.ok(resp)
}

func toProfileResponse(p *repository.ConstantsProfile) dto.ConstantsProfileResponse {
	return dto.ConstantsProfileResponse{
		ID:                  p.ID.Hex(),
		GallonsPerCubicFoot: p.GallonsPerCubicFoot,
		UnitsPerLivingRatio: p.UnitsPerLivingRatio,
		GPMPerUnitFactor:    p.GPMPerUnitFactor,
		Active:              p.Active,
		Version:             p.Version,
		CreatedBy:           p.CreatedBy,
		CreatedAt:           p.CreatedAt,
		Source:              service.SourceProfile,
	}
}
