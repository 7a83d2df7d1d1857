package handlers

import (
	"net/http"

	"reservation-api/services"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns every restaurant as a plain array (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	out, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetRestaurant returns a single restaurant
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	rest, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rest)
}

func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req services.RestaurantInput
	if !bindJSON(c, &req) {
		return
	}
	rest, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant added successfully", "id": rest.ID})
}

func (h *Handler) UpdateRestaurant(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req services.RestaurantInput
	if !bindJSON(c, &req) {
		return
	}
	if err := h.catalog.Update(c.Request.Context(), id, req); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated successfully."})
}

func (h *Handler) DeleteRestaurant(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully."})
}
