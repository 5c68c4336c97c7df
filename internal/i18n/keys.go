// Package i18n provides internationalization support for the pool flow service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient scopes.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates a backing store is not configured or unreachable.
	ErrKeyServiceUnavailable = "error.service_unavailable"

	ErrKeyInvalidZoneInput   = "error.calculation.invalid_zone_input"
	ErrKeyZeroTurnover       = "error.calculation.zero_turnover"
	ErrKeyEmptyMandatoryZone = "error.calculation.empty_mandatory_zone"
	ErrKeyInvalidConstants   = "error.calculation.invalid_constants"
	ErrKeyNonFiniteResult    = "error.calculation.non_finite_result"

	ErrKeyValidationUnitCount     = "error.validation.unit_count"
	ErrKeyValidationTooManyZones  = "error.validation.too_many_zones"
	ErrKeyValidationNegativeValue = "error.validation.negative_value"

	// ErrKeyRunNotFound indicates the run expired or never existed.
	ErrKeyRunNotFound = "error.run_not_found"
	// ErrKeyUnsupportedFormat indicates an unknown export format.
	ErrKeyUnsupportedFormat = "error.export.unsupported_format"
	// ErrKeyExportFailed indicates the export could not be rendered.
	ErrKeyExportFailed = "error.export.failed"
	// ErrKeyConstantsConflict indicates a concurrent constants profile update.
	ErrKeyConstantsConflict = "error.constants.conflict"
)

// Success message translation keys.
const (
	SuccessKeyFlowCalculated   = "success.flow_calculated"
	SuccessKeyConstantsUpdated = "success.constants_updated"
)
