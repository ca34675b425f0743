package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

func requestIDFrom(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.GetHeader(RequestIDHeader))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing x-requestid header"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid x-requestid header"})
		return uuid.Nil, false
	}
	return id, true
}

func renderAggregateError(c *gin.Context, log *logger.Logger, err error) {
	status := http.StatusInternalServerError
	switch domainagg.CodeOf(err) {
	case domainagg.CodeValidation:
		status = http.StatusBadRequest
	case domainagg.CodeUnauthorized:
		status = http.StatusUnauthorized
	case domainagg.CodeNotFound:
		status = http.StatusNotFound
	case domainagg.CodeConflict:
		status = http.StatusConflict
	case domainagg.CodeInvariantViolation:
		status = http.StatusUnprocessableEntity
	case domainagg.CodePreconditionFailed:
		status = http.StatusPreconditionFailed
	case domainagg.CodeRetryable:
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", "error", err)
		}
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
