package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

// respondError maps service errors to a status code and a JSON body.
// notFound is the message for a missing record; fallback is the generic
// message sent for unexpected failures, which are also logged.
func respondError(c *gin.Context, log zerolog.Logger, err error, notFound, fallback string) {
	status, body := classifyError(err, notFound)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg(fallback)
		body = gin.H{"error": fallback}
	}
	c.JSON(status, body)
}

func classifyError(err error, notFound string) (int, gin.H) {
	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		body := gin.H{"error": ve.Message}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		return http.StatusBadRequest, body
	case errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrNotImage),
		errors.Is(err, service.ErrFileRequired):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": notFound}
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, gin.H{"error": err.Error()}
	default:
		return http.StatusInternalServerError, nil
	}
}
