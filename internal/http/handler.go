package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/export"
	"github.com/guttosm/pool-flow-service/internal/i18n"
	"github.com/guttosm/pool-flow-service/internal/logger"
	"github.com/guttosm/pool-flow-service/internal/metrics"
	"github.com/guttosm/pool-flow-service/internal/middleware"
	"github.com/guttosm/pool-flow-service/internal/service"
)

// DefaultProjectName is used when neither the request nor configuration names the project.
const DefaultProjectName = "Pool"

// constantsLookupTimeout bounds the active profile lookup on the request path.
const constantsLookupTimeout = 2 * time.Second

// Handler provides HTTP handlers for flow calculation and run export routes.
type Handler struct {
	runs        service.RunService
	constants   service.ConstantsService
	defaults    model.GlobalConstants
	projectName string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithDefaults sets the constants used when no profile service is configured.
func WithDefaults(constants model.GlobalConstants) HandlerOption {
	return func(h *Handler) {
		h.defaults = constants
	}
}

// WithProjectName sets the project name used when a request omits it.
func WithProjectName(name string) HandlerOption {
	return func(h *Handler) {
		if name != "" {
			h.projectName = name
		}
	}
}

// NewHandler creates a new Handler instance. constants may be nil.
func NewHandler(runs service.RunService, constants service.ConstantsService, opts ...HandlerOption) *Handler {
	h := &Handler{
		runs:        runs,
		constants:   constants,
		defaults:    model.DefaultConstants(),
		projectName: DefaultProjectName,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// resolveConstants layers request overrides on the active profile.
func (h *Handler) resolveConstants(ctx context.Context, req *dto.CalculateFlowRequest) model.GlobalConstants {
	base := h.defaults
	if h.constants != nil {
		ctx, cancel := context.WithTimeout(ctx, constantsLookupTimeout)
		defer cancel()
		base = h.constants.Active(ctx).Constants
	}

	resolved := req.Constants.ApplyTo(base)
	resolved.UnitCount = req.UnitCount
	return resolved
}

// Calculate handles POST /api/calculate requests.
//
// @Summary      Calculate pool circulation flow rates
// @Description  Computes cubic feet, gallons and required flow rate for every zone, the pool totals, and the ordered report rows. The result is stored as the last run for its parameters and can be fetched or exported by run_id. Supports idempotency via Idempotency-Key header.
// @Tags         Flow
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CalculateFlowRequest true "Pool zones and optional constant overrides"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Successful calculation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - missing flow:calculate scope"
// @Failure      422 {object} dto.ErrorResponse "A zone cannot be evaluated"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	r := replyTo(c)

	run, cached, ok := h.calculate(c, r)
	if !ok {
		return
	}

	if ls, ok := loggingServiceFrom(c); ok {
		middleware.AuditLog(ls, c, model.ActionCalculate, run.ID, "Flow calculation requested", map[string]interface{}{
			"project_name": run.ProjectName,
			"zones":        len(run.Zones),
			"cached":       cached,
			"total_flow":   run.Aggregate.TotalFlowRateGPM,
		})
	}

	r.ok(dto.NewCalculateFlowResponse(run, cached))
}

// GetRun handles GET /api/runs/:id requests.
//
// @Summary      Get a calculation run
// @Description  Returns the last run stored for a run_id. Runs expire with the run cache TTL.
// @Tags         Flow
// @Produce      json
// @Param        id path string true "Run ID"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Stored run"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      404 {object} dto.ErrorResponse "Run not found or expired"
// @Security     BearerAuth
// @Router       /api/runs/{id} [get]
func (h *Handler) GetRun(c *gin.Context) {
	r := replyTo(c)

	run, ok := h.lookupRun(c, r)
	if !ok {
		return
	}

	r.ok(dto.NewCalculateFlowResponse(run, true))
}

// ExportRun handles GET /api/runs/:id/export requests.
//
// @Summary      Export a calculation run
// @Description  Downloads the export record of a stored run as CSV, XLSX or JSON. Values are rendered with two decimals.
// @Tags         Export
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      json
// @Param        id path string true "Run ID"
// @Param        format query string false "csv, xlsx or json" default(csv)
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {file} file "Export file"
// @Failure      400 {object} dto.ErrorResponse "Unsupported format"
// @Failure      404 {object} dto.ErrorResponse "Run not found or expired"
// @Failure      500 {object} dto.ErrorResponse "Export failed"
// @Security     BearerAuth
// @Router       /api/runs/{id}/export [get]
func (h *Handler) ExportRun(c *gin.Context) {
	r := replyTo(c)

	format, ok := parseFormat(c, r)
	if !ok {
		return
	}

	run, ok := h.lookupRun(c, r)
	if !ok {
		return
	}

	h.writeExport(c, r, run, format)
}

// Export handles POST /api/export requests.
//
// @Summary      Calculate and export
// @Description  Runs the calculation and responds with the export file in one call. The run is stored like POST /api/calculate.
// @Tags         Export
// @Accept       json
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      json
// @Param        format query string false "csv, xlsx or json" default(csv)
// @Param        request body dto.CalculateFlowRequest true "Pool zones and optional constant overrides"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {file} file "Export file"
// @Failure      400 {object} dto.ErrorResponse "Bad request or unsupported format"
// @Failure      422 {object} dto.ErrorResponse "A zone cannot be evaluated"
// @Failure      500 {object} dto.ErrorResponse "Export failed"
// @Security     BearerAuth
// @Router       /api/export [post]
func (h *Handler) Export(c *gin.Context) {
	r := replyTo(c)

	format, ok := parseFormat(c, r)
	if !ok {
		return
	}

	run, _, ok := h.calculate(c, r)
	if !ok {
		return
	}

	h.writeExport(c, r, run, format)
}

// calculate binds, validates and runs a calculation request, writing the
// error response itself when it returns false.
func (h *Handler) calculate(c *gin.Context, r reply) (*model.CalculationRun, bool, bool) {
	req, err := bindCalculation(c, h.projectName)
	if err != nil {
		var verr *dto.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordFlowCalculation(0, 0, "validation_error")
		}
		r.badBody(err)
		return nil, false, false
	}

	constants := h.resolveConstants(c.Request.Context(), req)

	run, cached, err := h.runs.Calculate(c.Request.Context(), req.ProjectName, req.ZoneInputs(), constants)
	if err != nil {
		r.calculationError(err)
		return nil, false, false
	}

	runLog := logger.ForRun(middleware.GetRequestID(c), run.ID, run.ProjectName)
	runLog.Debug().
		Int("zones", len(run.Zones)).
		Bool("cached", cached).
		Float64("total_flow_rate", run.Aggregate.TotalFlowRateGPM).
		Msg("flow calculated")

	return run, cached, true
}

func (h *Handler) lookupRun(c *gin.Context, r reply) (*model.CalculationRun, bool) {
	run, err := h.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			r.fail(http.StatusNotFound, i18n.ErrKeyRunNotFound, err)
		} else {
			r.fail(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return nil, false
	}
	return run, true
}

func (h *Handler) writeExport(c *gin.Context, r reply, run *model.CalculationRun, format export.Format) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, run.Report); err != nil {
		metrics.RecordExport(string(format), "error")
		if ls, ok := loggingServiceFrom(c); ok {
			middleware.AuditLogError(ls, c, model.ActionExport, run.ID, "Export failed", err, map[string]interface{}{
				"format": string(format),
			})
		}
		r.fail(http.StatusInternalServerError, i18n.ErrKeyExportFailed, err)
		return
	}

	metrics.RecordExport(string(format), "success")
	if ls, ok := loggingServiceFrom(c); ok {
		middleware.AuditLog(ls, c, model.ActionExport, run.ID, "Run exported", map[string]interface{}{
			"format": string(format),
			"bytes":  buf.Len(),
		})
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(run.ProjectName, format)+`"`)
	c.Header("X-Run-ID", run.ID)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func parseFormat(c *gin.Context, r reply) (export.Format, bool) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		metrics.RecordExport(c.Query("format"), "unsupported")
		r.failWith(http.StatusBadRequest, i18n.ErrKeyUnsupportedFormat, err, map[string]string{
			"format": c.Query("format"),
		})
		return "", false
	}
	return format, true
}

func validationKey(err *dto.ValidationError) string {
	switch err {
	case dto.ErrInvalidUnitCount:
		return i18n.ErrKeyValidationUnitCount
	case dto.ErrTooManyZones:
		return i18n.ErrKeyValidationTooManyZones
	default:
		return i18n.ErrKeyValidationNegativeValue
	}
}

// loggingServiceFrom returns the audit logging service set by the router, if any.
func loggingServiceFrom(c *gin.Context) (service.LoggingService, bool) {
	v, exists := c.Get("logging_service")
	if !exists {
		return nil, false
	}
	ls, ok := v.(service.LoggingService)
	return ls, ok && ls != nil
}
