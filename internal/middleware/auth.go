package middleware

import (
	"net/http"
	"strings"

	"github.com/parmenasoares/track-and-work/internal/apierror"
	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token. Roles is the
// full role list so the guard middlewares never need a DB round-trip.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries the exact role.
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasRoleAtLeast reports whether any carried role meets the minimum.
func (c *JWTClaims) HasRoleAtLeast(min string) bool {
	for _, r := range c.Roles {
		if model.RoleAtLeast(r, min) {
			return true
		}
	}
	return false
}

// JWTAuth validates the Bearer token on every protected route. A missing or
// invalid session answers 401 — the client redirects to login.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCoded("not_authenticated", "Authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCoded("not_authenticated", "Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests that do not hold the exact role
// (the is_user_role check).
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !claims.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.NewCoded("not_authorized", "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireAdminOrAbove is the is_admin_or_super_admin guard.
func RequireAdminOrAbove() gin.HandlerFunc {
	return requireAtLeast(model.RoleAdmin)
}

// RequireCoordenadorOrAbove is the is_coordenador_or_above guard.
func RequireCoordenadorOrAbove() gin.HandlerFunc {
	return requireAtLeast(model.RoleCoordenador)
}

func requireAtLeast(min string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !claims.HasRoleAtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.NewCoded("not_authorized", "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
