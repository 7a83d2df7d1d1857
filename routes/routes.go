package routes

import (
	"reservation-api/handlers"
	"reservation-api/middleware"
	"reservation-api/models"

	"github.com/gin-gonic/gin"
)

// Options tunes how strictly the self-service routes are gated.
type Options struct {
	// RequireSession makes POST /reservations and
	// GET /reservations/user/:userId reject anonymous callers.
	RequireSession bool
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens middleware.Verifier, opts Options) {
	authRequired := middleware.AuthRequired(tokens)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)
	selfService := middleware.OptionalAuth(tokens)
	if opts.RequireSession {
		selfService = authRequired
	}

	// ── Public routes ──────────────────────────────────────────────
	r.GET("/", h.Welcome)
	r.GET("/health", h.Health)
	r.GET("/state-machine", h.GetStateMachineInfo)

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	r.GET("/restaurants", h.ListRestaurants)
	r.GET("/restaurants/:id", h.GetRestaurant)

	// ── Session routes ─────────────────────────────────────────────
	session := r.Group("/")
	session.Use(authRequired)
	{
		session.POST("/logout", h.Logout)
		session.GET("/profile", h.GetProfile)
		session.GET("/profile/reservations", h.GetMyReservations)
		session.DELETE("/profile/reservations/:id", h.CancelMyReservation)
	}

	// ── Self-service booking ───────────────────────────────────────
	r.POST("/reservations", selfService, h.CreateReservation)
	r.GET("/reservations/user/:userId", selfService, h.ListUserReservations)

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/")
	admin.Use(authRequired, adminOnly)
	{
		admin.POST("/restaurants", h.CreateRestaurant)
		admin.PUT("/restaurants/:id", h.UpdateRestaurant)
		admin.DELETE("/restaurants/:id", h.DeleteRestaurant)

		admin.GET("/reservations", h.AdminListReservations)
		admin.GET("/reservations/:id/history", h.AdminReservationHistory)
		admin.PUT("/reservations/:id", h.AdminUpdateReservation)
		admin.DELETE("/reservations/:id", h.AdminDeleteReservation)
	}
}
