package handlers

import (
	"errors"
	"net/http"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusFor maps workflow errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidActor), errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrLimitExceeded), errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrActorNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConcurrentUpdate), errors.Is(err, domain.ErrLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
