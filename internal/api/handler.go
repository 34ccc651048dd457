package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/github-user-summary/pkg/logging"
	"github.com/Sternrassler/github-user-summary/pkg/service"
	"github.com/Sternrassler/github-user-summary/pkg/summary"
)

// SummaryService is what the handler needs from the service layer.
type SummaryService interface {
	GetUserSummary(ctx context.Context, rawUsername string) (*summary.UserSummary, error)
}

// Handler handles API requests
type Handler struct {
	service SummaryService
	logger  zerolog.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc SummaryService) *Handler {
	return &Handler{
		service: svc,
		logger:  logging.NewLogger("api"),
	}
}

// GetUserSummary returns the summary for one GitHub user
// GET /userSummary/v1/:username
func (h *Handler) GetUserSummary(c *gin.Context) {
	username := c.Param("username")
	if !summary.ValidLogin(username) {
		h.logger.Info().Str("username", username).Msg("Rejected invalid username")
		respondProblem(c, Problem{
			Status: http.StatusBadRequest,
			Title:  "Request parameters were invalid.",
			Detail: "username must be 1-39 alphanumeric characters or single hyphens, not starting or ending with a hyphen",
			URI:    c.Request.URL.Path,
		})
		return
	}

	result, err := h.service.GetUserSummary(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck returns the health status
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps service errors to problem documents.
func (h *Handler) respondError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var upstream *service.UpstreamError

	switch {
	case errors.As(err, &notFound):
		h.logger.Warn().Str("user", notFound.UserName).Msg("User not found in GitHub")
		respondProblem(c, Problem{
			Status:   http.StatusNotFound,
			Title:    "User not found in GitHub",
			Detail:   err.Error(),
			UserName: notFound.UserName,
		})
	case errors.As(err, &upstream):
		h.logger.Error().Err(upstream.Cause).Str("user", upstream.UserName).Msg("Error accessing GitHub API")
		respondProblem(c, Problem{
			Status:   http.StatusInternalServerError,
			Title:    "Error accessing GitHub API",
			Detail:   err.Error(),
			UserName: upstream.UserName,
		})
	default:
		h.logger.Error().Err(err).Msg("Unexpected exception occurred while handling request")
		respondProblem(c, Problem{
			Status: http.StatusInternalServerError,
			Title:  "Unexpected exception occurred while handling request.",
			Detail: err.Error(),
		})
	}
}
