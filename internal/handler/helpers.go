package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/parmenasoares/track-and-work/internal/apierror"
	"github.com/parmenasoares/track-and-work/internal/i18n"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// requestLang resolves the response language: explicit ?lang= wins, then
// Accept-Language, defaulting to Portuguese.
func requestLang(c *gin.Context) string {
	if q := c.Query("lang"); q != "" {
		return i18n.Normalize(q)
	}
	return i18n.Normalize(c.GetHeader("Accept-Language"))
}

// statusByErr maps service sentinels to HTTP statuses. The sentinel's string
// value doubles as the stable machine code in the response envelope.
var statusByErr = []struct {
	err    error
	status int
}{
	{service.ErrInvalidLogin, http.StatusUnauthorized},
	{service.ErrNotAuthorized, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrNoOpenActivity, http.StatusNotFound},
	{service.ErrEmailTaken, http.StatusConflict},
	{service.ErrActivityAlreadyOpen, http.StatusConflict},
	{service.ErrActivityClosed, http.StatusConflict},
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrCannotChangeSelf, http.StatusBadRequest},
	{service.ErrOdometerBelowStart, http.StatusUnprocessableEntity},
	{service.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrInvalidImageType, http.StatusBadRequest},
	{service.ErrInvalidFileType, http.StatusBadRequest},
	{service.ErrInvalidDocType, http.StatusBadRequest},
	{service.ErrInvalidPrefix, http.StatusBadRequest},
}

// writeServiceError maps a service error to the public envelope: the detail is
// always a localized, safe message; the raw error never leaves the server.
func writeServiceError(c *gin.Context, err error) {
	msg := i18n.MapPublicError(err, requestLang(c))
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			c.JSON(m.status, apierror.NewCoded(m.err.Error(), msg))
			return
		}
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
	c.JSON(http.StatusInternalServerError, apierror.New(msg))
}
