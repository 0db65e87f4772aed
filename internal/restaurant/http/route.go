package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers restaurant routes. There is no delete: restaurants
// are retired outside this service.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/restaurants")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
	}
}
