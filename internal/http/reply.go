package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/i18n"
	"github.com/guttosm/pool-flow-service/internal/middleware"
)

// reply writes the JSON envelopes shared by every API route.
type reply struct {
	c *gin.Context
}

func replyTo(c *gin.Context) reply {
	return reply{c: c}
}

// ok sends 200 with data wrapped in dto.SuccessResponse.
func (r reply) ok(data interface{}) {
	r.status(http.StatusOK, data)
}

func (r reply) status(code int, data interface{}) {
	r.c.JSON(code, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(r.c),
		Timestamp: time.Now(),
	})
}

// fail aborts with a translated error. err is attached to the context so the
// error handler middleware logs it.
func (r reply) fail(code int, messageKey string, err error) {
	r.failWith(code, messageKey, err, nil)
}

func (r reply) failWith(code int, messageKey string, err error, details map[string]string) {
	message := messageKey
	if translator := i18n.GetTranslator(); translator != nil {
		message = translator.Translate(messageKey, i18n.GetLocale(r.c))
	}

	resp := dto.NewError(dto.ErrCodeFromStatus(code), message).WithRequestID(middleware.GetRequestID(r.c))
	resp.Details = details

	if err != nil {
		_ = r.c.Error(err)
	}
	r.c.AbortWithStatusJSON(code, resp)
}

// badBody answers a bind failure: field errors name the field, anything else
// is a malformed body.
func (r reply) badBody(err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		r.failWith(http.StatusBadRequest, validationKey(verr), err, map[string]string{
			verr.Field: verr.Message,
		})
		return
	}
	r.fail(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// calculationError maps core errors to 422 with the failing zone in details.
// Anything unrecognised is a 500.
func (r reply) calculationError(err error) {
	key := calculationErrorKey(err)
	if key == "" {
		r.fail(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	var details map[string]string
	var zerr *model.ZoneError
	if errors.As(err, &zerr) {
		details = map[string]string{
			"zone_index": strconv.Itoa(zerr.Index),
			"zone_name":  zerr.Name,
		}
	}
	r.failWith(http.StatusUnprocessableEntity, key, err, details)
}

func calculationErrorKey(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyMandatoryZone):
		return i18n.ErrKeyEmptyMandatoryZone
	case errors.Is(err, model.ErrZeroTurnover):
		return i18n.ErrKeyZeroTurnover
	case errors.Is(err, model.ErrInvalidZoneInput):
		return i18n.ErrKeyInvalidZoneInput
	case errors.Is(err, model.ErrInvalidConstants):
		return i18n.ErrKeyInvalidConstants
	case errors.Is(err, model.ErrNonFiniteResult):
		return i18n.ErrKeyNonFiniteResult
	}
	return ""
}
