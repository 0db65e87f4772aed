package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/response"
)

// AuthRequired authenticates staff by "Authorization: Bearer <token>" and
// stores the staff member and tenant on the context. A valid token without a
// tenant is refused with 403: every route below it is tenant scoped.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, "missing or malformed Authorization header")
			return
		}

		claims, err := jwtManager.ParseAndValidate(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if claims.TenantID <= 0 {
			abort(c, http.StatusForbidden, "token is not bound to a restaurant group")
			return
		}

		c.Set(staffIDKey, claims.Subject)
		c.Set(tenantIDKey, claims.TenantID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, response.ErrorResponse{Error: message})
}
