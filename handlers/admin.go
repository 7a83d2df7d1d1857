package handlers

import (
	"net/http"

	"reservation-api/middleware"
	"reservation-api/services"

	"github.com/gin-gonic/gin"
)

// AdminListReservations returns every reservation with user and restaurant
// names — admin only
func (h *Handler) AdminListReservations(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	out, err := h.ledger.ListAll(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AdminUpdateReservation changes date, time and party size
func (h *Handler) AdminUpdateReservation(c *gin.Context) {
	resID, ok := bindID(c)
	if !ok {
		return
	}
	var req services.ReservationChanges
	if !bindJSON(c, &req) {
		return
	}
	id, _ := middleware.GetIdentity(c)
	res, err := h.ledger.Update(c.Request.Context(), id, resID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated successfully.", "reservation": res})
}

func (h *Handler) AdminDeleteReservation(c *gin.Context) {
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

// AdminReservationHistory returns the audit trail of one reservation
func (h *Handler) AdminReservationHistory(c *gin.Context) {
	resID, ok := bindID(c)
	if !ok {
		return
	}
	id, _ := middleware.GetIdentity(c)
	out, err := h.ledger.History(c.Request.Context(), id, resID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
