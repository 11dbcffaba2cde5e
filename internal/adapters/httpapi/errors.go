package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindNotFound:         http.StatusNotFound,
	apperr.KindForbidden:        http.StatusForbidden,
	apperr.KindMaxDepthReached:  http.StatusBadRequest,
	apperr.KindSelfFollow:       http.StatusBadRequest,
	apperr.KindAlreadyFollowing: http.StatusConflict,
	apperr.KindNotFollowing:     http.StatusConflict,
	apperr.KindValidation:       http.StatusUnprocessableEntity,
	apperr.KindBadRequest:       http.StatusBadRequest,
	apperr.KindUnauthorized:     http.StatusUnauthorized,
}

// fail writes err as an envelope. Errors without a known kind are logged and hidden.
func fail(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) || e.Kind == apperr.KindInternal {
		config.Logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		respond(c, http.StatusInternalServerError, "", nil)
		return
	}

	status, found := kindStatus[e.Kind]
	if !found {
		status = http.StatusInternalServerError
	}
	var data interface{}
	if len(e.Fields) > 0 {
		data = e.Fields
	}
	respond(c, status, e.Message, data)
}

// failBinding reports request decoding problems. Validator failures list the offending fields.
func failBinding(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		respond(c, http.StatusUnprocessableEntity, "Invalid data provided", fields)
		return
	}
	respond(c, http.StatusBadRequest, "Invalid data provided", nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "url":
		return "Enter a valid URL."
	default:
		return "Invalid value."
	}
}
