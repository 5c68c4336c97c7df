package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnprocessable indicates input the calculation cannot evaluate.
	ErrCodeUnprocessable = "unprocessable_entity"
	// ErrCodeUnavailable indicates a dependency is down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data (CalculateFlowResponse for the calculate endpoint)
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"zones[0].area: must not be negative"`
	// Details contains additional error details (optional)
	// Example: {"field": "error message"}
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails attaches per-field details to the error response.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusUnprocessableEntity:
		return ErrCodeUnprocessable
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// CalculateFlowResponse is the body returned by the calculate endpoint.
//
// @Description Flow calculation result with report rows
type CalculateFlowResponse struct {
	// RunID fingerprints the inputs; use it to fetch or export the run later
	RunID       string                `json:"run_id" example:"4f9a0c..."`
	ProjectName string                `json:"project_name" example:"Summerlit"`
	Constants   model.GlobalConstants `json:"constants"`
	Aggregate   model.AggregateResult `json:"aggregate"`
	Rows        []model.ReportRow     `json:"rows"`
	// Cached reports whether the run was served from the run cache
	Cached bool `json:"cached" example:"false"`
} // @name CalculateFlowResponse

// NewCalculateFlowResponse builds the response body from a stored run.
func NewCalculateFlowResponse(run *model.CalculationRun, cached bool) CalculateFlowResponse {
	return CalculateFlowResponse{
		RunID:       run.ID,
		ProjectName: run.ProjectName,
		Constants:   run.Constants,
		Aggregate:   run.Aggregate,
		Rows:        run.Report.Rows,
		Cached:      cached,
	}
}

// ConstantsProfileResponse describes a stored constants profile.
//
// @Description Constants profile
type ConstantsProfileResponse struct {
	ID                  string    `json:"id,omitempty" example:"65b7f0c2e4b0a1a2b3c4d5e6"`
	GallonsPerCubicFoot float64   `json:"gallons_per_cubic_foot" example:"7.48"`
	UnitsPerLivingRatio float64   `json:"units_per_living_ratio" example:"4.5"`
	GPMPerUnitFactor    float64   `json:"gpm_per_unit_factor" example:"0.75"`
	Active              bool      `json:"active" example:"true"`
	Version             int       `json:"version" example:"3"`
	CreatedBy           string    `json:"created_by,omitempty" example:"ops"`
	CreatedAt           time.Time `json:"created_at,omitempty"`
	// Source is "profile" when loaded from storage and "defaults" when served from configuration
	Source string `json:"source" example:"profile"`
} // @name ConstantsProfileResponse
