package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientreg/internal/api/dto"
	"github.com/martijn/clientreg/internal/core/apperror"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal server error"

// ErrorHandlerMiddleware is the single place errors become responses.
// Operational errors are rendered with their own status and message; anything
// else, panics included, is logged and rendered as a generic 500.
func ErrorHandlerMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(requestFields(c)).
					WithField("panic", rec).
					Error("Panic while handling request")
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMessage})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			switch appErr.Kind {
			case apperror.KindValidation, apperror.KindNotFound, apperror.KindConflict:
				c.JSON(appErr.Kind.Status(), dto.ErrorResponse{Error: appErr.Message})
				return
			case apperror.KindInternal:
				log.WithFields(requestFields(c)).WithError(err).Error("Internal error")
				c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMessage})
				return
			}
		}

		log.WithFields(requestFields(c)).WithError(err).Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMessage})
	}
}

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": RequestIDFrom(c),
	}
}
