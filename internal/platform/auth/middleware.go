package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// Role names as stored in the users table.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// Authenticate requires a valid Bearer token and stores the decoded claims on
// the request context for downstream gates and handlers.
func Authenticate(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token.")
			}

			ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAdmin passes only admin tokens.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims := ClaimsFromContext(c.Request().Context()); claims != nil && claims.Role == RoleAdmin {
			return next(c)
		}
		return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admin privileges required.")
	}
}

// RequireDoctor passes doctor and admin tokens.
func RequireDoctor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFromContext(c.Request().Context())
		if claims != nil && (claims.Role == RoleDoctor || claims.Role == RoleAdmin) {
			return next(c)
		}
		return echo.NewHTTPError(http.StatusForbidden, "Access denied. Doctor privileges required.")
	}
}

// RequireOwnerOrAdmin passes when the numeric id in the named path parameter
// equals the authenticated user's id, or the token carries the admin role.
// An unparseable path id is treated as non-matching, not as an error.
func RequireOwnerOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c.Request().Context())
			if claims == nil {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. You can only access your own data.")
			}
			if claims.Role == RoleAdmin {
				return next(c)
			}
			id, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err == nil && id == claims.UserID {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "Access denied. You can only access your own data.")
		}
	}
}

// ClaimsFromContext returns the authenticated claims, or nil when the request
// did not pass through Authenticate.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// UserIDFromContext returns the authenticated user id, or 0.
func UserIDFromContext(ctx context.Context) int64 {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// RoleFromContext returns the authenticated role, or "".
func RoleFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Role
	}
	return ""
}

// WithClaims returns a context carrying the given claims. Exposed for tests
// that exercise handlers without the full middleware chain.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
