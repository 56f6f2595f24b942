package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnkitSingh-ai/templaterepo/internal/api/middleware"
	"github.com/AnkitSingh-ai/templaterepo/internal/service"
)

// ErrorResponse is the JSON body of every failure response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// getPrincipal returns the caller's principal id set by the auth middleware.
func getPrincipal(c *gin.Context) string {
	return c.GetString(middleware.PrincipalContextKey)
}

// handleServiceError maps service-layer errors to HTTP status codes.
func handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
		return
	}
	var authErr *service.AuthorizationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: authErr.Message})
		return
	}
	slog.Error("unhandled service error", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
