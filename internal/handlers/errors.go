package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beacon-dev/beacon/internal/apperrors"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Taxonomy messages surface verbatim; anything else is a 500 with a
// generic body.
func respondError(ctx *gin.Context, logger *zap.Logger, err error) {
	var notFound *apperrors.NotFoundError
	var quotaExceeded *apperrors.QuotaExceededError
	var conflict *apperrors.ConflictError
	var referential *apperrors.ReferentialViolationError

	switch {
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &quotaExceeded):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &referential):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
