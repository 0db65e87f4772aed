package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers table routes nested under a restaurant.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/restaurants/:id/tables")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:tableId", h.Get)
		group.PATCH("/:tableId", h.Update)
		group.DELETE("/:tableId", h.Delete)
	}
}
