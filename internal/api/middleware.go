package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/requestid"
)

// corsMiddleware allows the local front-end in development and only the
// configured origins in production.
func corsMiddleware(isProduction bool, prodOrigins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if isProduction {
		config.AllowOrigins = prodOrigins
	} else {
		config.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8081", // Swagger
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestid.HeaderKey}
	config.ExposeHeaders = []string{requestid.HeaderKey}
	return cors.New(config)
}

// healthHandler answers 200 when ready reports no error, 503 otherwise.
func healthHandler(ready func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
