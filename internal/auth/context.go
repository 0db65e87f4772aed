package auth

import "github.com/gin-gonic/gin"

const (
	staffIDKey  = "staffID"
	tenantIDKey = "tenantID"
)

// GetStaffID returns the authenticated staff member's ID or empty string.
func GetStaffID(c *gin.Context) string {
	if v, ok := c.Get(staffIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetTenantID returns the tenant from the token, or 0 when unauthenticated.
func GetTenantID(c *gin.Context) int64 {
	if v, ok := c.Get(tenantIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
