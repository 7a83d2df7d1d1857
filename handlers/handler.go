package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"reservation-api/middleware"
	"reservation-api/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the services every HTTP endpoint delegates to.
type Handler struct {
	auth    *services.AuthService
	catalog *services.CatalogService
	ledger  *services.LedgerService
	ping    func(context.Context) error
	log     *slog.Logger
}

func New(
	authSvc *services.AuthService,
	catalog *services.CatalogService,
	ledger *services.LedgerService,
	ping func(context.Context) error,
	log *slog.Logger,
) *Handler {
	return &Handler{auth: authSvc, catalog: catalog, ledger: ledger, ping: ping, log: log}
}

type idURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

type userIDURI struct {
	UserID uint `uri:"userId" binding:"required,min=1"`
}

func bindID(c *gin.Context) (uint, bool) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer", "field": "id"})
		return 0, false
	}
	return uri.ID, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// respondError maps a service error onto its HTTP status. Anything not in
// the taxonomy is logged and hidden behind a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(middleware.RequestIDHeader),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error."})
	}
}
