package handlers

import (
	"net/http"

	"reservation-api/middleware"
	"reservation-api/services"

	"github.com/gin-gonic/gin"
)

// CreateReservation books a table. The caller is optional unless the
// router demands a session.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req services.NewReservation
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.ledger.Create(c.Request.Context(), middleware.OptionalIdentity(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created successfully.",
		"id":          res.ID,
		"reservation": res,
	})
}

// ListUserReservations lists the reservations of the user in the path
func (h *Handler) ListUserReservations(c *gin.Context) {
	var uri userIDURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a positive integer", "field": "userId"})
		return
	}
	out, err := h.ledger.ListForUser(c.Request.Context(), middleware.OptionalIdentity(c), uri.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMyReservations lists the caller's own reservations
func (h *Handler) GetMyReservations(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	out, err := h.ledger.ListForUser(c.Request.Context(), &id, id.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CancelMyReservation deletes one of the caller's reservations
func (h *Handler) CancelMyReservation(c *gin.Context) {
	resID, ok := bindID(c)
	if !ok {
		return
	}
	id, _ := middleware.GetIdentity(c)
	if err := h.ledger.Delete(c.Request.Context(), id, resID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully."})
}
