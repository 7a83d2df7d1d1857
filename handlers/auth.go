package handlers

import (
	"net/http"

	"reservation-api/middleware"
	"reservation-api/services"

	"github.com/gin-gonic/gin"
)

// Signup creates a new user account
func (h *Handler) Signup(c *gin.Context) {
	var req services.SignupInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user_id": user.ID,
	})
}

// Login authenticates a user and returns a signed token
func (h *Handler) Login(c *gin.Context) {
	var req services.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       res.User,
	})
}

// Logout revokes the presented token
func (h *Handler) Logout(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	h.auth.Logout(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	user, err := h.auth.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
