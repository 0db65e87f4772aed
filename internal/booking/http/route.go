package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking and availability routes nested under a restaurant.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/restaurants/:id")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("/bookings", h.List)
		group.POST("/bookings", h.Create)
		group.GET("/bookings/:bookingId", h.Get)
		group.PATCH("/bookings/:bookingId", h.Update)

		group.POST("/availability/check", h.Check)
		group.GET("/availability/free-tables", h.FreeTables)
		group.GET("/availability/occupancy", h.Occupancy)
	}
}
